package lifecycle

import (
	"context"
	"log/slog"

	"hailsim/internal/domain"
)

// LogSink forwards feedback to the log. In a real system this would hand
// the record to a driver-rating service.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Submit(ctx context.Context, record domain.FeedbackRecord) error {
	s.Logger.Info("feedback submitted",
		"id", record.ID,
		"driver", record.DriverName,
		"rating", record.Rating,
		"comment", record.Comment)
	return nil
}
