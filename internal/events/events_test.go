package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

func TestPublishWithRetrySucceedsFirstTry(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, SubjectInterviewAnalyzed, mock.Anything).Return(nil).Once()

	err := PublishWithRetry(context.Background(), pub, SubjectInterviewAnalyzed, "payload", 3, time.Millisecond)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	pub.AssertExpectations(t)
}

func TestPublishWithRetryRecovers(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, SubjectResumeAnalyzed, mock.Anything).Return(errors.New("broker down")).Once()
	pub.On("Publish", mock.Anything, SubjectResumeAnalyzed, mock.Anything).Return(nil).Once()

	err := PublishWithRetry(context.Background(), pub, SubjectResumeAnalyzed, "payload", 3, time.Millisecond)
	if err != nil {
		t.Errorf("expected recovery, got %v", err)
	}
	pub.AssertExpectations(t)
}

func TestPublishWithRetryExhausted(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, SubjectResumeAnalyzed, mock.Anything).Return(errors.New("broker down")).Times(3)

	err := PublishWithRetry(context.Background(), pub, SubjectResumeAnalyzed, "payload", 3, time.Millisecond)
	if err == nil {
		t.Error("expected error after exhausting attempts")
	}
	pub.AssertExpectations(t)
}

func TestNoOpPublisher(t *testing.T) {
	if err := NewNoOpPublisher().Publish(context.Background(), "any", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
