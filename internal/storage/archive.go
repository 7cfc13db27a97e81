package storage

import (
	"context"
	"fmt"

	"smartcart/internal/trip"
)

// TripArchiver writes each trip result to trips/<user>/<id>.json.
type TripArchiver struct {
	r2 *R2Client
}

func NewTripArchiver(r2 *R2Client) *TripArchiver {
	return &TripArchiver{r2: r2}
}

func (a *TripArchiver) Archive(ctx context.Context, r *trip.Result) error {
	return a.r2.PutJSON(ctx, archiveKey(r), r)
}

func archiveKey(r *trip.Result) string {
	user := r.UserID
	if user == "" {
		user = "anonymous"
	}
	return fmt.Sprintf("trips/%s/%s.json", user, r.ID)
}
