package tasks

import (
	"fmt"
	"slices"
	"time"
)

type sample struct {
	bucket      BucketID
	title       string
	description string
	dueInDays   *int
	estimate    int
}

var samples = []sample{
	{BucketTimeSensitive, "Submit tax documents", "Deadline is today - gather W2s and receipts", Ptr(0), 120},
	{BucketTimeSensitive, "Call dentist for emergency appointment", "Tooth pain getting worse, need same-day appointment", Ptr(0), 15},
	{BucketTimeSensitive, "Pick up prescription before pharmacy closes", "Medication runs out tomorrow, pharmacy closes at 6pm", Ptr(0), 30},

	{BucketImportant, "Prepare quarterly business review presentation", "Key metrics and strategy updates for leadership team", Ptr(7), 180},
	{BucketImportant, "Interview senior developer candidate", "Final round interview for critical team position", Ptr(3), 60},
	{BucketImportant, "Review and sign contract with new vendor", "Legal review complete, need final approval and signature", Ptr(5), 45},

	{BucketWhenAvailable, "Organize digital photo library", "Sort and tag family photos from last year", nil, 90},
	{BucketWhenAvailable, "Read industry white paper on AI trends", "35-page report on emerging AI applications in our sector", nil, 75},
	{BucketWhenAvailable, "Plan weekend hiking trip", "Research trails and book campsite for next month", nil, 60},
	{BucketWhenAvailable, "Learn basic Spanish phrases", "Practice conversational Spanish for upcoming vacation", nil, 45},
}

// SeedSamples fills the store with the demo board. Deadlines are calendar
// dates (local midnight) relative to now; creation dates are fixed in early
// January 2025, one day apart. Either every sample is added or none is.
func SeedSamples(s *Store, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	seed := make([]Task, 0, len(samples))
	added := make(map[BucketID]int)
	for i, smp := range samples {
		created := time.Date(2025, time.January, i+1, 0, 0, 0, 0, now.Location())
		t := Task{
			ID:           s.newID(),
			Title:        smp.title,
			Description:  Ptr(smp.description),
			TimeEstimate: Ptr(smp.estimate),
			BucketID:     smp.bucket,
			CreatedAt:    created,
			UpdatedAt:    created,
		}
		if smp.dueInDays != nil {
			t.Deadline = Ptr(today.AddDate(0, 0, *smp.dueInDays))
		}

		b, ok := s.Bucket(t.BucketID)
		if !ok {
			return fmt.Errorf("seed %q: %w: unknown bucket %q", smp.title, ErrInvalidInput, t.BucketID)
		}
		if limit, limited := b.Capacity(); limited && s.Count(b.ID)+added[b.ID] >= limit {
			return fmt.Errorf("seed %q: %w", smp.title, &CapacityError{Bucket: b.ID, Title: b.Title, Max: limit})
		}
		if s.find(t.ID) != nil || slices.ContainsFunc(seed, func(o Task) bool { return o.ID == t.ID }) {
			return fmt.Errorf("seed %q: %w: duplicate id %s", smp.title, ErrInvalidInput, t.ID)
		}
		added[b.ID]++
		seed = append(seed, t)
	}

	for _, t := range seed {
		if err := s.insert(t); err != nil {
			return fmt.Errorf("seed %q: %w", t.Title, err)
		}
	}
	return nil
}
