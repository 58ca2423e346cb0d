package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/payments/dto"
	"sepaku_backend/internals/features/finance/payments/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

/* ---------- fakes ---------- */

type memPayments struct {
	rows map[uuid.UUID]*model.Payment
}

func newMemPayments() *memPayments { return &memPayments{rows: map[uuid.UUID]*model.Payment{}} }

func (m *memPayments) Create(_ context.Context, p *model.Payment) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	cp := *p
	m.rows[p.PaymentID] = &cp
	return nil
}

func (m *memPayments) Save(_ context.Context, p *model.Payment) error {
	cp := *p
	m.rows[p.PaymentID] = &cp
	return nil
}

func (m *memPayments) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.rows[id]; !ok {
		return apperror.NotFound("payment")
	}
	delete(m.rows, id)
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, apperror.NotFound("payment")
	}
	cp := *p
	return &cp, nil
}

func (m *memPayments) SetAccount(_ context.Context, id uuid.UUID, accountID *uuid.UUID) error {
	p, ok := m.rows[id]
	if !ok {
		return apperror.NotFound("payment")
	}
	if accountID == nil {
		p.PaymentAccountID = nil
		return nil
	}
	v := *accountID
	p.PaymentAccountID = &v
	return nil
}

func (m *memPayments) Unlinked(_ context.Context, yearID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range m.rows {
		if p.PaymentSchoolYearID == yearID && !p.Linked() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memPayments) List(_ context.Context, _ dto.ListPaymentsQuery) ([]model.Payment, int64, error) {
	var out []model.Payment
	for _, p := range m.rows {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type memAccounts []accountModel.Account

func (a memAccounts) ListAll(context.Context) ([]accountModel.Account, error) { return a, nil }

func (a memAccounts) GetByID(_ context.Context, id uuid.UUID) (*accountModel.Account, error) {
	for i := range a {
		if a[i].AccountID == id {
			cp := a[i]
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("account")
}

func account(payer string) accountModel.Account {
	return accountModel.Account{AccountID: uuid.New(), AccountFamilyID: uuid.New(), AccountPayer: payer}
}

func payment(year uuid.UUID, payer string) *model.Payment {
	return &model.Payment{
		PaymentID:           uuid.New(),
		PaymentPayerRaw:     payer,
		PaymentAmount:       decimal.NewFromInt(100),
		PaymentSchoolYearID: year,
	}
}

func newService(accounts memAccounts) (*Service, *memPayments) {
	repo := newMemPayments()
	return NewService(repo, accounts, helper.NewValidator(), zerolog.Nop()), repo
}

/* ---------- matcher ---------- */

func TestMatchCandidates_Exactness(t *testing.T) {
	jane := account("Jane Doe")
	accounts := []accountModel.Account{jane, account("Jane Doer"), account("John Doe")}

	got := MatchCandidates(accounts, "jane   doe")
	require.Len(t, got, 1)
	assert.Equal(t, jane.AccountID, got[0].AccountID)

	assert.Empty(t, MatchCandidates(accounts, "Jane Do"))
	assert.Empty(t, MatchCandidates(accounts, "   "))
	assert.Len(t, MatchCandidates(append(accounts, account("JANE DOE")), "Jane Doe"), 2)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, dto.MatchUnmatched, Outcome(nil))
	assert.Equal(t, dto.MatchLinked, Outcome([]accountModel.Account{account("a")}))
	assert.Equal(t, dto.MatchAmbiguous, Outcome([]accountModel.Account{account("a"), account("a")}))
}

func TestRankSuggestions(t *testing.T) {
	accounts := []accountModel.Account{account("Max Mustermann"), account("Jane Doer"), account("Jane Doe")}

	got := RankSuggestions(accounts, "Jane Deo", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "Jane Doe", got[0].Account.AccountPayer)
	assert.Equal(t, 2, got[0].Distance)
	assert.Equal(t, "Jane Doer", got[1].Account.AccountPayer)
}

/* ---------- service ---------- */

func TestAutoLink_OnlyOnSingleCandidate(t *testing.T) {
	year := uuid.New()
	jane := account("Jane Doe")
	s, repo := newService(memAccounts{jane, account("Max Muster"), account("max  muster")})
	ctx := context.Background()

	single := payment(year, "JANE DOE")
	dup := payment(year, "Max Muster")
	none := payment(year, "Unknown Sender")
	for _, p := range []*model.Payment{single, dup, none} {
		require.NoError(t, repo.Create(ctx, p))
	}

	res, err := s.AutoLink(ctx, single.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, dto.MatchLinked, res.Outcome)
	assert.Equal(t, jane.AccountID, *repo.rows[single.PaymentID].PaymentAccountID)

	res, err = s.AutoLink(ctx, dup.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, dto.MatchAmbiguous, res.Outcome)
	assert.Equal(t, 2, res.Candidates)
	assert.Nil(t, repo.rows[dup.PaymentID].PaymentAccountID)

	res, err = s.AutoLink(ctx, none.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, dto.MatchUnmatched, res.Outcome)

	res, err = s.AutoLink(ctx, single.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, dto.MatchSkipped, res.Outcome)
}

func TestAutoLinkAll_Report(t *testing.T) {
	year, other := uuid.New(), uuid.New()
	jane := account("Jane Doe")
	s, repo := newService(memAccounts{jane, account("Max Muster"), account("Max Muster")})
	ctx := context.Background()

	linked := payment(year, "jane doe")
	ambiguous := payment(year, "Max Muster")
	unmatched := payment(year, "Erika")
	otherYear := payment(other, "Jane Doe")
	for _, p := range []*model.Payment{linked, ambiguous, unmatched, otherYear} {
		require.NoError(t, repo.Create(ctx, p))
	}

	report, err := s.AutoLinkAll(ctx, year)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Linked)
	assert.Equal(t, []uuid.UUID{ambiguous.PaymentID}, report.Ambiguous)
	assert.Equal(t, []uuid.UUID{unmatched.PaymentID}, report.Unmatched)
	assert.Equal(t, jane.AccountID, *repo.rows[linked.PaymentID].PaymentAccountID)
	assert.Nil(t, repo.rows[otherYear.PaymentID].PaymentAccountID)
}

func TestCreate_MasksIBANAndAutoLinks(t *testing.T) {
	jane := account("Jane Doe")
	s, repo := newService(memAccounts{jane})
	iban := "DE89 3704 0044 0532 0130 00"

	p, err := s.Create(context.Background(), dto.CreatePaymentRequest{
		BookingDate:  "2024-10-01",
		PayerRaw:     "Jane Doe",
		IBAN:         &iban,
		Amount:       decimal.RequireFromString("120.456"),
		Method:       "sepa",
		SchoolYearID: uuid.New(),
		AutoLink:     true,
	}, uuid.New())
	require.NoError(t, err)

	stored := repo.rows[p.PaymentID]
	assert.Equal(t, "DE****000", *stored.PaymentIBANMasked)
	assert.Equal(t, "120.46", stored.PaymentAmount.StringFixed(2))
	require.NotNil(t, stored.PaymentAccountID)
	assert.Equal(t, jane.AccountID, *stored.PaymentAccountID)
}

func TestCreate_RejectsZeroAmountAndUnknownAccount(t *testing.T) {
	s, _ := newService(memAccounts{})
	ctx := context.Background()
	base := dto.CreatePaymentRequest{BookingDate: "2024-10-01", PayerRaw: "X", Method: "cash", SchoolYearID: uuid.New()}

	_, err := s.Create(ctx, base, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	base.Amount = decimal.NewFromInt(10)
	missing := uuid.New()
	base.AccountID = &missing
	_, err = s.Create(ctx, base, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestLinkUnlink(t *testing.T) {
	jane := account("Jane Doe")
	s, repo := newService(memAccounts{jane})
	ctx := context.Background()
	p := payment(uuid.New(), "Someone Else")
	require.NoError(t, repo.Create(ctx, p))

	got, err := s.Link(ctx, p.PaymentID, jane.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Linked())

	got, err = s.Unlink(ctx, p.PaymentID)
	require.NoError(t, err)
	assert.False(t, got.Linked())

	_, err = s.Link(ctx, p.PaymentID, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
