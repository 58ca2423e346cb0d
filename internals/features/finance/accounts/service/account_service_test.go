package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"sepaku_backend/internals/features/finance/accounts/dto"
	"sepaku_backend/internals/features/finance/accounts/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type memRepo struct {
	rows map[uuid.UUID]*model.Account
}

func newMemRepo() *memRepo { return &memRepo{rows: map[uuid.UUID]*model.Account{}} }

func (m *memRepo) Create(_ context.Context, a *model.Account) error {
	if a.AccountID == uuid.Nil {
		a.AccountID = uuid.New()
	}
	cp := *a
	m.rows[a.AccountID] = &cp
	return nil
}

func (m *memRepo) Save(_ context.Context, a *model.Account) error {
	cp := *a
	m.rows[a.AccountID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return apperror.NotFound("account")
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, apperror.NotFound("account")
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) ListByFamily(_ context.Context, familyID uuid.UUID) ([]model.Account, error) {
	var out []model.Account
	for _, a := range m.rows {
		if a.AccountFamilyID == familyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memRepo) List(_ context.Context, _ dto.ListAccountsQuery) ([]model.Account, int64, error) {
	var out []model.Account
	for _, a := range m.rows {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

type passFields struct{}

func (passFields) Validate(_ context.Context, v map[string]any) (datatypes.JSON, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return datatypes.JSON(`{"ok":true}`), nil
}

type families map[uuid.UUID]bool

func (f families) FamilyExists(_ context.Context, id uuid.UUID) (bool, error) { return f[id], nil }

func strPtr(s string) *string { return &s }

func newService(t *testing.T, fam uuid.UUID) (*Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return NewService(repo, passFields{}, families{fam: true}, helper.NewValidator(), zerolog.Nop()), repo
}

func TestCreate_MasksIBANAndDropsBIC(t *testing.T) {
	fam := uuid.New()
	s, repo := newService(t, fam)

	a, err := s.Create(context.Background(), dto.CreateAccountRequest{
		FamilyID:   fam,
		Payer:      "Jane Doe",
		IBAN:       strPtr("DE89 3704 0044 0532 0130 00"),
		BIC:        strPtr("COBADEFFXXX"),
		SignedDate: strPtr("2023-02-01"),
	}, uuid.New())
	require.NoError(t, err)

	stored := repo.rows[a.AccountID]
	require.NotNil(t, stored.AccountIBANMasked)
	assert.Equal(t, "DE****000", *stored.AccountIBANMasked)
	assert.Nil(t, stored.AccountBIC)
	require.NotNil(t, stored.AccountSignedDate)
	assert.Equal(t, "2023-02-01", stored.AccountSignedDate.Format(dto.DateLayout))
	assert.NotNil(t, stored.AccountCreatedBy)
}

func TestCreate_Validation(t *testing.T) {
	fam := uuid.New()
	s, _ := newService(t, fam)
	ctx := context.Background()

	_, err := s.Create(ctx, dto.CreateAccountRequest{FamilyID: fam, Payer: "Jane", IBAN: strPtr("DE00 0000")}, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = s.Create(ctx, dto.CreateAccountRequest{FamilyID: uuid.New(), Payer: "Jane"}, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestPatch_UpdatesOnlyGivenFields(t *testing.T) {
	fam := uuid.New()
	s, repo := newService(t, fam)
	ctx := context.Background()

	a, err := s.Create(ctx, dto.CreateAccountRequest{FamilyID: fam, Payer: "Jane Doe", IBAN: strPtr("DE89370400440532013000")}, uuid.Nil)
	require.NoError(t, err)

	_, err = s.Patch(ctx, a.AccountID, dto.PatchAccountRequest{Note: strPtr("  called on monday ")})
	require.NoError(t, err)

	stored := repo.rows[a.AccountID]
	assert.Equal(t, "Jane Doe", stored.AccountPayer)
	assert.Equal(t, "DE****000", *stored.AccountIBANMasked)
	assert.Equal(t, "called on monday", *stored.AccountNote)

	_, err = s.Patch(ctx, uuid.New(), dto.PatchAccountRequest{})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
