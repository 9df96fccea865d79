package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tablebook/reservation-service/internal/notify"
	"github.com/tablebook/reservation-service/internal/repository"
)

const TaskReminderSweep = "reservation:reminder_sweep"

// reminderWindow is how far ahead of the reservation time reminders go out.
const reminderWindow = 24 * time.Hour

// ReminderWorker periodically sweeps upcoming confirmed reservations and
// emits a reminder notification for each one that has not had one yet. It
// runs outside the reservation core as a scheduled asynq task.
type ReminderWorker struct {
	reservations repository.ReservationRepository
	sink         notify.Sink
}

func NewReminderWorker(reservations repository.ReservationRepository, sink notify.Sink) *ReminderWorker {
	return &ReminderWorker{reservations: reservations, sink: sink}
}

func (w *ReminderWorker) HandleReminderSweep(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()
	due, err := w.reservations.FindNeedingReminder(ctx, now, now.Add(reminderWindow))
	if err != nil {
		return fmt.Errorf("find reservations needing reminder: %w", err)
	}

	for _, reservation := range due {
		if w.sink != nil {
			w.sink.Emit(notify.EventUserNotification, reservation.RestaurantID, map[string]any{
				"reservation_code": reservation.Code,
				"customer_id":      reservation.CustomerID,
				"reservation_time": reservation.ReservationTime,
				"message":          "upcoming reservation reminder",
			})
		}
		if err := w.reservations.MarkReminderSent(ctx, reservation.ID); err != nil {
			return fmt.Errorf("mark reminder sent for reservation %d: %w", reservation.ID, err)
		}
	}

	if len(due) > 0 {
		log.Printf("[ReminderWorker] sent %d reminders", len(due))
	}
	return nil
}
