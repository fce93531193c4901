// Package sqsgath publishes run reports to an AWS SQS queue.
package sqsgath

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
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

type sqsResQueueGatherer struct {
	sqsClient *sqs.Client
	queueUrl  string
}

// New loads the default AWS configuration and returns a gatherer that
// sends run reports to the given queue URL.
func New(ctx context.Context, region string, queueUrl string) (*sqsResQueueGatherer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &sqsResQueueGatherer{
		sqsClient: sqs.NewFromConfig(cfg),
		queueUrl:  queueUrl,
	}, nil
}

func (s *sqsResQueueGatherer) StartRun(runID string, argv []string, lim supervise.Limits) {
	s.send(StartedRun{
		Header: Header{RunUuid: runID, MsgType: MsgTypeStartedRun},
		Argv:   argv,
		Limits: lim,
	})
}

func (s *sqsResQueueGatherer) FinishRun(runID string, res supervise.Result) {
	s.send(FinishedRun{
		Header: Header{RunUuid: runID, MsgType: MsgTypeFinishedRun},
		Result: res,
	})
}

func (s *sqsResQueueGatherer) send(msg interface{}) {
	b, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("failed to marshal message", "error", err)
		return
	}

	_, err = s.sqsClient.SendMessage(context.TODO(), &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.queueUrl),
		MessageBody: aws.String(string(b)),
	})
	if err != nil {
		slog.Warn("failed to send message to SQS", "error", err)
	}
}
