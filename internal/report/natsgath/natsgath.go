// Package natsgath publishes run reports to a NATS subject as
// snappy-compressed JSON for the rest of the grading pipeline.
package natsgath

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/klauspost/compress/snappy"
	"github.com/nats-io/nats.go"
	"github.com/tsarn/pygon-run/internal/supervise"
)

const (
	MsgTypeStartedRun  = "started_run"
	MsgTypeFinishedRun = "finished_run"
)

type Header struct {
	RunUuid string `json:"run_uuid"`
	MsgType string `json:"msg_type"`
}

type StartedRun struct {
	Header
	Argv   []string         `json:"argv"`
	Limits supervise.Limits `json:"limits"`
}

type FinishedRun struct {
	Header
	Result supervise.Result `json:"result"`
}

type natsGatherer struct {
	nc      *nats.Conn
	subject string
}

// New connects to the NATS server and returns a gatherer publishing to
// the given subject.
func New(url string, subject string) (*natsGatherer, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &natsGatherer{nc: nc, subject: subject}, nil
}

func (g *natsGatherer) StartRun(runID string, argv []string, lim supervise.Limits) {
	g.send(StartedRun{
		Header: Header{RunUuid: runID, MsgType: MsgTypeStartedRun},
		Argv:   argv,
		Limits: lim,
	})
}

func (g *natsGatherer) FinishRun(runID string, res supervise.Result) {
	g.send(FinishedRun{
		Header: Header{RunUuid: runID, MsgType: MsgTypeFinishedRun},
		Result: res,
	})
}

func (g *natsGatherer) Close() {
	if err := g.nc.Drain(); err != nil {
		slog.Warn("failed to drain NATS connection", "error", err)
	}
}

func (g *natsGatherer) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("failed to marshal message", "error", err)
		return
	}

	compressed := snappy.Encode(nil, b)
	if err := g.nc.Publish(g.subject, compressed); err != nil {
		slog.Warn("failed to publish message to NATS", "error", err)
	}
}
