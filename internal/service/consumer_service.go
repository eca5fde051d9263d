package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/repository/memory"
	"ai-datavault-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	importService IImportService
	jobs          *memory.JobRepository
	events        IEventPublisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	importService IImportService,
	jobs *memory.JobRepository,
	eventPublisher IEventPublisher,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		importService: importService,
		jobs:          jobs,
		events:        eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ImportQueuedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal import job message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing import job %s", payload.JobId)

	job, ok := cs.jobs.Get(payload.JobId)
	if !ok {
		// Registry entry expired or was never written; rebuild a minimal one.
		job = &dto.ImportJob{
			Id:          payload.JobId,
			AccountName: payload.AccountName,
			SubmittedAt: time.Now().UTC(),
		}
	}
	job.Status = dto.JobRunning
	cs.jobs.Save(job)
	cs.events.Emit(ctx, events.NewImportEvent(events.ImportStarted, job.Id, job.AccountName))

	data, err := os.ReadFile(payload.ArchivePath)
	if err != nil {
		log.Printf("[ERROR] Staged archive missing for job %s: %v", payload.JobId, err)
		cs.finishJob(ctx, job, nil, err)
		msg.Ack()
		return
	}
	defer os.Remove(payload.ArchivePath)

	result, err := cs.importService.ProcessArchive(ctx, data, payload.AccountName)
	cs.finishJob(ctx, job, result, err)

	// The job record carries the outcome either way; retrying a failed batch
	// is an operator decision, not a redelivery.
	msg.Ack()
}

func (cs *consumerService) finishJob(ctx context.Context, job *dto.ImportJob, result *dto.BatchResult, err error) {
	now := time.Now().UTC()
	job.FinishedAt = &now
	job.Result = result

	if err != nil {
		job.Status = dto.JobFailed
		job.Error = err.Error()
		cs.jobs.Save(job)
		cs.events.Emit(ctx, events.NewImportEvent(events.ImportFailed, job.Id, job.AccountName))
		return
	}

	job.Status = dto.JobCompleted
	cs.jobs.Save(job)
	cs.events.Emit(ctx, events.NewImportEvent(events.ImportCompleted, job.Id, job.AccountName))
}
