package service

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/features/finance/snapshots/dto"
	"sepaku_backend/internals/features/finance/snapshots/model"
	"sepaku_backend/internals/helpers/apperror"
)

type memSnapshots struct {
	rows []model.BalanceSnapshot
	tick time.Time
}

func (m *memSnapshots) Create(_ context.Context, s *model.BalanceSnapshot) error {
	m.tick = m.tick.Add(time.Minute)
	s.BalanceSnapshotID = uuid.New()
	s.BalanceSnapshotCreatedAt = m.tick
	m.rows = append(m.rows, *s)
	return nil
}

func (m *memSnapshots) Latest(_ context.Context, familyID, yearID uuid.UUID) (*model.BalanceSnapshot, error) {
	var out *model.BalanceSnapshot
	for i := range m.rows {
		r := m.rows[i]
		if r.BalanceSnapshotFamilyID == familyID && r.BalanceSnapshotSchoolYearID == yearID {
			out = &r
		}
	}
	return out, nil
}

func (m *memSnapshots) List(_ context.Context, familyID, yearID uuid.UUID) ([]model.BalanceSnapshot, error) {
	var out []model.BalanceSnapshot
	for i := len(m.rows) - 1; i >= 0; i-- {
		r := m.rows[i]
		if r.BalanceSnapshotFamilyID == familyID && r.BalanceSnapshotSchoolYearID == yearID {
			out = append(out, r)
		}
	}
	return out, nil
}

// liveBalance returns whatever balance the test sets.
type liveBalance struct{ balance decimal.Decimal }

func (l *liveBalance) ComputeFamilyBalance(_ context.Context, familyID, yearID uuid.UUID) (balanceDto.Balance, error) {
	return balanceDto.Balance{
		FamilyID:         familyID,
		SchoolYearID:     yearID,
		TotalFees:        decimal.NewFromInt(500),
		TotalPayments:    decimal.NewFromInt(300),
		TotalAdjustments: decimal.NewFromInt(-50),
		Balance:          l.balance,
		Fees:             []balanceDto.FeeLine{{StudentName: "Ada", Months: 5, Amount: decimal.NewFromInt(500)}},
		Payments:         []balanceDto.PaymentLine{},
		Adjustments:      []balanceDto.AdjustmentLine{},
	}, nil
}

type families map[uuid.UUID]bool

func (f families) FamilyExists(_ context.Context, id uuid.UUID) (bool, error) { return f[id], nil }

func newTestService() (*Service, *liveBalance, uuid.UUID) {
	fam := uuid.New()
	live := &liveBalance{balance: decimal.RequireFromString("-250.00")}
	repo := &memSnapshots{tick: time.Date(2024, 10, 1, 8, 0, 0, 0, time.UTC)}
	return NewService(repo, live, families{fam: true}, zerolog.Nop()), live, fam
}

func TestCompareWithoutSnapshot(t *testing.T) {
	svc, _, fam := newTestService()

	cmp, err := svc.CompareToLatest(context.Background(), fam, uuid.New())
	require.NoError(t, err)
	assert.False(t, cmp.HasSnapshot)
	assert.True(t, cmp.Changed)
	assert.Nil(t, cmp.Latest)

	_, err = svc.GetLatest(context.Background(), fam, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCompareIsIdempotent(t *testing.T) {
	svc, _, fam := newTestService()
	year := uuid.New()
	ctx := context.Background()

	id, err := svc.Create(ctx, fam, year, uuid.New())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		cmp, err := svc.CompareToLatest(ctx, fam, year)
		require.NoError(t, err)
		assert.True(t, cmp.HasSnapshot)
		assert.False(t, cmp.Changed)
		assert.Equal(t, id, *cmp.SnapshotID)
		assert.True(t, cmp.Delta.IsZero())
	}
}

func TestCompareEpsilon(t *testing.T) {
	svc, live, fam := newTestService()
	year := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, fam, year, uuid.Nil)
	require.NoError(t, err)

	live.balance = decimal.RequireFromString("-249.995")
	cmp, err := svc.CompareToLatest(ctx, fam, year)
	require.NoError(t, err)
	assert.False(t, cmp.Changed)

	live.balance = decimal.RequireFromString("-249.99")
	cmp, err = svc.CompareToLatest(ctx, fam, year)
	require.NoError(t, err)
	assert.True(t, cmp.Changed)
	assert.Equal(t, "0.01", cmp.Delta.String())
}

func TestCreateStoresLineItems(t *testing.T) {
	svc, live, fam := newTestService()
	year := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, fam, year, uuid.Nil)
	require.NoError(t, err)
	live.balance = decimal.NewFromInt(10)
	second, err := svc.Create(ctx, fam, year, uuid.Nil)
	require.NoError(t, err)

	latest, err := svc.GetLatest(ctx, fam, year)
	require.NoError(t, err)
	assert.Equal(t, second, latest.BalanceSnapshotID)
	assert.Equal(t, "10", latest.BalanceSnapshotBalance.String())
	assert.Equal(t, "-50", latest.BalanceSnapshotTotalAdjustments.String())

	var items dto.LineItems
	require.NoError(t, sonic.Unmarshal(latest.BalanceSnapshotLineItems, &items))
	require.Len(t, items.Fees, 1)
	assert.Equal(t, "Ada", items.Fees[0].StudentName)

	all, err := svc.List(ctx, fam, year)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Create(ctx, uuid.New(), year, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
