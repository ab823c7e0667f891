package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/koya1616/koko-pic/internal/models"
)

// ListRequests returns the photo requests of the directory. When near is set,
// the rows are biased towards that coordinate; callers must not rely on this
// ordering, the client always re-ranks with the distance ranker.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - near: An optional coordinate used as a crude server-side proximity bias.
//
// Returns:
// - A slice of models.Request without any derived distance annotation.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) ListRequests(ctx context.Context, near *models.Coordinate) ([]models.Request, error) {
	query := `
		SELECT request_id, latitude, longitude, status, place_name, description
		FROM public.requests
		ORDER BY created_at ASC;
	`
	args := []any{}
	if near != nil {
		// Squared degree offset is good enough for a bias; precise ranking
		// happens client-side on the haversine distance.
		query = `
			SELECT request_id, latitude, longitude, status, place_name, description
			FROM public.requests
			ORDER BY
				latitude IS NULL,
				(latitude - $1) * (latitude - $1) + (longitude - $2) * (longitude - $2) ASC;
		`
		args = append(args, near.Latitude, near.Longitude)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// FetchRequestsForPlaceLookup retrieves requests that have a coordinate but no
// place name yet. It skips requests with 5 or more failed lookups. The results
// are ordered by creation date and limited to the specified count.
func (r *Repository) FetchRequestsForPlaceLookup(ctx context.Context, limit int) ([]models.Request, error) {
	query := `
		SELECT request_id, latitude, longitude, status, place_name, description
		FROM public.requests
		WHERE
			latitude IS NOT NULL
			AND place_name IS NULL
			AND place_lookup_attempts < 5
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests without place name: %w", err)
	}
	defer rows.Close()

	requests, err := scanRequests(rows)
	if err != nil {
		return nil, err
	}

	for _, request := range requests {
		r.log.DebugContext(ctx, "A new request without place name has been received.",
			"ID", request.ID, "Description", request.Description)
	}

	return requests, nil
}

// UpdateRequestPlaceName stores the resolved place name for a request and
// clears the lookup error. It returns an error if the update fails.
func (r *Repository) UpdateRequestPlaceName(ctx context.Context, requestID int, placeName string) error {
	query := `
		UPDATE requests
		SET
			place_name = $1,
			place_lookup_error = NULL
		WHERE
			request_id = $2;
	`

	_, err := r.db.Exec(ctx, query, placeName, requestID)
	if err != nil {
		return fmt.Errorf("failed to update request place name: %w", err)
	}

	return nil
}

// IncrementLookupFailure increments the place lookup attempt count for a
// specific request identified by requestID and updates the associated error
// message. If the update operation fails, it returns an error with additional
// context.
func (r *Repository) IncrementLookupFailure(ctx context.Context, requestID int, errMsg string) error {
	query := `
		UPDATE requests
		SET
			place_lookup_attempts = place_lookup_attempts + 1,
			place_lookup_error = $1
		WHERE request_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, requestID)
	if err != nil {
		return fmt.Errorf("failed to update place lookup error and number of attempts: %w", err)
	}

	return nil
}

// GetStatus returns the durable permission record for a capability key.
// Implements permission.Store.
func (r *Repository) GetStatus(ctx context.Context, key string) (models.PermissionStatus, bool, error) {
	query := `SELECT status FROM public.permission_records WHERE capability = $1;`

	var status string
	err := r.db.QueryRow(ctx, query, key).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query permission record: %w", err)
	}

	return models.PermissionStatus(status), true, nil
}

// SetStatus saves or replaces the durable permission record for a capability
// key. Implements permission.Store.
func (r *Repository) SetStatus(ctx context.Context, key string, status models.PermissionStatus) error {
	query := `
		INSERT INTO public.permission_records (capability, status)
		VALUES ($1, $2)
		ON CONFLICT (capability) DO UPDATE SET status = EXCLUDED.status;
	`

	_, err := r.db.Exec(ctx, query, key, string(status))
	if err != nil {
		return fmt.Errorf("failed to upsert permission record: %w", err)
	}

	return nil
}

func scanRequests(rows pgx.Rows) ([]models.Request, error) {
	var requests []models.Request

	for rows.Next() {
		var (
			request   models.Request
			latitude  *float64
			longitude *float64
			status    string
			placeName *string
		)
		if errScan := rows.Scan(
			&request.ID, &latitude, &longitude, &status, &placeName, &request.Description,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan request: %w", errScan)
		}

		request.Status = models.RequestStatus(status)
		if latitude != nil && longitude != nil {
			request.Location = &models.Coordinate{Latitude: *latitude, Longitude: *longitude}
		}
		if placeName != nil {
			request.PlaceName = *placeName
		}

		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return requests, nil
}
