package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/features/finance/issues/dto"
	paymentModel "sepaku_backend/internals/features/finance/payments/model"
	schoolRepo "sepaku_backend/internals/features/finance/school/repository"
)

func strPtr(s string) *string { return &s }

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func acct(family uuid.UUID, payer string, iban *string, signed *time.Time) accountModel.Account {
	return accountModel.Account{
		AccountID:         uuid.New(),
		AccountFamilyID:   family,
		AccountPayer:      payer,
		AccountIBANMasked: iban,
		AccountSignedDate: signed,
	}
}

func TestDuplicateIBAN(t *testing.T) {
	a := acct(uuid.New(), "Jane Doe", strPtr("DE****000"), nil)
	b := acct(uuid.New(), "John Roe", strPtr("DE****000"), nil)
	c := acct(uuid.New(), "Max Muster", strPtr("AT****123"), nil)
	d := acct(uuid.New(), "No Iban", nil, nil)
	e := acct(uuid.New(), "No Iban Either", nil, nil)

	groups := DuplicateIBAN([]accountModel.Account{a, b, c, d, e}, nil)
	require.Len(t, groups, 1)
	assert.Equal(t, "DE****000", groups[0].Key)
	assert.Len(t, groups[0].Accounts, 2)
}

func TestDuplicateAccount(t *testing.T) {
	fam := uuid.New()
	names := map[uuid.UUID]string{fam: "Doe"}
	groups := DuplicateAccount([]accountModel.Account{
		acct(fam, "Jane Doe", nil, nil),
		acct(fam, "John Doe", nil, nil),
		acct(uuid.New(), "Solo", nil, nil),
	}, names)

	require.Len(t, groups, 1)
	assert.Equal(t, fam.String(), groups[0].Key)
	assert.Equal(t, "Doe", groups[0].Accounts[0].FamilyName)
}

func TestSimilarPayer(t *testing.T) {
	accounts := []accountModel.Account{
		acct(uuid.New(), "Anna Meier", nil, nil),
		acct(uuid.New(), "Anna Meyer", nil, nil),
		acct(uuid.New(), "Jonas Schmidt", nil, nil),
	}
	for _, alg := range []string{AlgorithmSoundex, AlgorithmMetaphone} {
		t.Run(alg, func(t *testing.T) {
			groups := SimilarPayer(accounts, nil, alg)
			require.Len(t, groups, 1)
			assert.Len(t, groups[0].Accounts, 2)
		})
	}
}

func TestPhoneticKey_FoldsDiacritics(t *testing.T) {
	for _, alg := range []string{AlgorithmSoundex, AlgorithmMetaphone} {
		assert.Equal(t, PhoneticKey("Mueller", alg), PhoneticKey("Müller", alg), alg)
		assert.Empty(t, PhoneticKey("  ", alg), alg)
	}
}

func TestStaleMandate(t *testing.T) {
	today := *date("2025-03-10")
	old := acct(uuid.New(), "Old", nil, date("2022-03-09"))
	edge := acct(uuid.New(), "Edge", nil, date("2022-03-10"))
	fresh := acct(uuid.New(), "Fresh", nil, date("2024-01-01"))
	unsigned := acct(uuid.New(), "Unsigned", nil, nil)

	items := StaleMandate([]accountModel.Account{fresh, edge, old, unsigned}, nil, 3, today)
	require.Len(t, items, 1)
	assert.Equal(t, old.AccountID, items[0].AccountID)
}

func TestMissingAccount(t *testing.T) {
	withAccount, without := uuid.New(), uuid.New()
	items := MissingAccount(
		[]schoolRepo.ActiveFamily{
			{FamilyID: withAccount, FamilyName: "Doe", ActiveStudents: 1},
			{FamilyID: without, FamilyName: "Roe", ActiveStudents: 2},
		},
		[]accountModel.Account{acct(withAccount, "Jane Doe", nil, nil)},
	)
	require.Len(t, items, 1)
	assert.Equal(t, without, items[0].FamilyID)
	assert.Equal(t, 2, items[0].ActiveStudents)
}

func lowBalanceFamily() balanceDto.Balance {
	return balanceDto.Balance{
		FamilyID:            uuid.New(),
		TotalFees:           dec("1000"),
		TotalPayments:       dec("380"),
		PositiveAdjustments: decimal.Zero,
		NegativeAdjustments: decimal.Zero,
		Balance:             dec("-620"),
	}
}

func TestLowBalance_Absolute(t *testing.T) {
	b := lowBalanceFamily()
	proportion := dec("0.4")

	expected, paid, shortfall := Shortfall(b, proportion)
	assert.Equal(t, "400.00", expected.StringFixed(2))
	assert.Equal(t, "380.00", paid.StringFixed(2))
	assert.Equal(t, "20.00", shortfall.StringFixed(2))

	flagged := LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodAbsolute, dec("2"))
	require.Len(t, flagged, 1)
	require.NotNil(t, flagged[0].Shortfall)
	assert.Equal(t, "20.00", flagged[0].Shortfall.StringFixed(2))
	assert.Equal(t, "400.00", flagged[0].ExpectedNow.StringFixed(2))

	assert.Empty(t, LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodAbsolute, dec("25")))
}

func TestLowBalance_RelativeMethods(t *testing.T) {
	b := lowBalanceFamily()
	proportion := dec("0.4")

	// 1% of 1000 = 10 < 20, 3% = 30 > 20
	assert.Len(t, LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodPercentage, dec("1")), 1)
	assert.Empty(t, LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodPercentage, dec("3")))

	// 4% of 400 = 16 < 20, 10% = 40 > 20
	assert.Len(t, LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodProportion, dec("4")), 1)
	assert.Empty(t, LowBalance([]balanceDto.Balance{b}, nil, proportion, MethodProportion, dec("10")))
}

func TestLowBalance_AdjustmentsShiftExpectation(t *testing.T) {
	b := lowBalanceFamily()
	b.PositiveAdjustments = dec("30")
	assert.Empty(t, LowBalance([]balanceDto.Balance{b}, nil, dec("0.4"), MethodAbsolute, decimal.Zero))

	b = lowBalanceFamily()
	b.NegativeAdjustments = dec("100")
	_, _, shortfall := Shortfall(b, dec("0.4"))
	assert.Equal(t, "60.00", shortfall.StringFixed(2))
}

func TestHighBalance(t *testing.T) {
	over := balanceDto.Balance{FamilyID: uuid.New(), Balance: dec("150")}
	exact := balanceDto.Balance{FamilyID: uuid.New(), Balance: dec("100")}
	under := balanceDto.Balance{FamilyID: uuid.New(), Balance: dec("-20")}

	items := HighBalance([]balanceDto.Balance{under, exact, over}, nil, dec("100"))
	require.Len(t, items, 1)
	assert.Equal(t, over.FamilyID, items[0].FamilyID)
	assert.Nil(t, items[0].Shortfall)

	raw, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "shortfall")
	assert.NotContains(t, string(raw), "expected_now")
}

func TestUnlinkedPayments(t *testing.T) {
	linked := uuid.New()
	items := UnlinkedPayments([]paymentModel.Payment{
		{PaymentID: uuid.New(), PaymentPayerRaw: "Jane", PaymentAmount: dec("10"), PaymentBookingDate: *date("2024-10-01")},
		{PaymentID: uuid.New(), PaymentPayerRaw: "John", PaymentAmount: dec("20"), PaymentAccountID: &linked},
	})
	require.Len(t, items, 1)
	assert.Equal(t, "Jane", items[0].Payer)
	assert.Equal(t, "2024-10-01", items[0].BookingDate)
}

func TestParseIssueType(t *testing.T) {
	got, ok := dto.ParseIssueType("low_balance")
	assert.True(t, ok)
	assert.Equal(t, dto.IssueLowBalance, got)

	_, ok = dto.ParseIssueType("nope")
	assert.False(t, ok)
}
