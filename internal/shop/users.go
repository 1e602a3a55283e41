package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/fakeshop/internal/faker"
	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/store"
	"github.com/Rana718/fakeshop/internal/types"
)

// Users creates customers and serves as the order generator's user source.
type Users struct {
	store    store.Store
	profiles *faker.ProfileProvider
	pool     *popularityPool
	log      *logger.Logger
	metrics  *metrics.Registry
}

var _ generator.UserSource = (*Users)(nil)

func (u *Users) SampleExisting(ctx context.Context, n int) ([]types.UserRef, error) {
	return u.store.SampleExistingUsers(ctx, n)
}

// Create registers n new customers on createdAt and renormalises user
// popularity. The returned refs carry the stored ids.
func (u *Users) Create(ctx context.Context, n int, createdAt time.Time) ([]types.UserRef, error) {
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, &generator.PreconditionError{Field: "num_users", Value: n, Err: generator.ErrInvalidCount}
	}
	if createdAt.IsZero() {
		createdAt = types.Now()
	}
	createdAt = createdAt.UTC()

	ceiling, err := u.pool.ceiling(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get popularity upper limit: %w", err)
	}

	profiles := u.profiles.Profiles(n)
	users := make([]types.User, len(profiles))
	for i, p := range profiles {
		users[i] = types.User{
			Name:       p.Name,
			Address:    p.Address,
			Country:    p.Country,
			Email:      p.Email,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
			Popularity: u.pool.draw(ceiling),
		}
	}

	ids, err := u.store.InsertUsers(ctx, users)
	if err != nil {
		return nil, err
	}
	if err := u.pool.normalise(ctx); err != nil {
		return nil, fmt.Errorf("failed to normalise user popularity: %w", err)
	}

	refs := make([]types.UserRef, len(users))
	for i := range users {
		users[i].ID = ids[i]
		refs[i] = users[i].Ref()
	}

	u.metrics.UsersCreated.Add(float64(len(users)))
	u.log.Info("Created users", "count", len(users), "locales", u.profiles.Locales())
	return refs, nil
}

// Update rewrites contact details. Every id must already exist.
func (u *Users) Update(ctx context.Context, updates []types.UserUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	ids := make([]int64, len(updates))
	for i, up := range updates {
		ids[i] = up.ID
	}
	existing, err := u.store.Users(ctx, types.UserFilter{IDs: types.Many(ids...)})
	if err != nil {
		return 0, fmt.Errorf("failed to look up users: %w", err)
	}
	found := make(map[int64]bool, len(existing))
	for _, e := range existing {
		found[e.ID] = true
	}
	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %v", ErrUnknownUser, missing)
	}

	n, err := u.store.UpdateUsers(ctx, updates)
	if err != nil {
		return 0, err
	}
	u.log.Info("Updated users", "count", n)
	return n, nil
}
