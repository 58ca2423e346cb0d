package service

import (
	"sort"
	"strings"
	"time"

	"github.com/antzucaro/matchr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/features/finance/issues/dto"
	paymentModel "sepaku_backend/internals/features/finance/payments/model"
	schoolRepo "sepaku_backend/internals/features/finance/school/repository"
	helper "sepaku_backend/internals/helpers"
)

var hundred = decimal.NewFromInt(100)

func accountItem(a accountModel.Account, names map[uuid.UUID]string) dto.AccountItem {
	return dto.AccountItem{
		AccountID:  a.AccountID,
		FamilyID:   a.AccountFamilyID,
		FamilyName: names[a.AccountFamilyID],
		Payer:      a.AccountPayer,
		IBANMasked: a.AccountIBANMasked,
		SignedDate: a.AccountSignedDate,
	}
}

// groupAccounts buckets accounts by key and keeps buckets with more than one
// member. Empty keys are skipped. Groups come back sorted by key.
func groupAccounts(accounts []accountModel.Account, names map[uuid.UUID]string, key func(accountModel.Account) string) []dto.AccountGroup {
	buckets := map[string][]dto.AccountItem{}
	for _, a := range accounts {
		k := key(a)
		if k == "" {
			continue
		}
		buckets[k] = append(buckets[k], accountItem(a, names))
	}

	out := []dto.AccountGroup{}
	for k, items := range buckets {
		if len(items) > 1 {
			out = append(out, dto.AccountGroup{Key: k, Accounts: items})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func DuplicateIBAN(accounts []accountModel.Account, names map[uuid.UUID]string) []dto.AccountGroup {
	return groupAccounts(accounts, names, func(a accountModel.Account) string {
		if a.AccountIBANMasked == nil {
			return ""
		}
		return strings.ToUpper(strings.TrimSpace(*a.AccountIBANMasked))
	})
}

func DuplicateAccount(accounts []accountModel.Account, names map[uuid.UUID]string) []dto.AccountGroup {
	return groupAccounts(accounts, names, func(a accountModel.Account) string {
		return a.AccountFamilyID.String()
	})
}

// PhoneticKey encodes every word of the folded name and joins the codes, so
// "Müller Jan" and "Mueller Jan" can land on the same key.
func PhoneticKey(name, algorithm string) string {
	words := strings.Fields(helper.FoldName(name))
	codes := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToUpper(w)
		var code string
		if algorithm == AlgorithmSoundex {
			code = matchr.Soundex(w)
		} else {
			code, _ = matchr.DoubleMetaphone(w)
		}
		if code != "" {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, " ")
}

// SimilarPayer groups accounts whose payer names sound alike. Matches are
// suggestions for manual review only.
func SimilarPayer(accounts []accountModel.Account, names map[uuid.UUID]string, algorithm string) []dto.AccountGroup {
	return groupAccounts(accounts, names, func(a accountModel.Account) string {
		return PhoneticKey(a.AccountPayer, algorithm)
	})
}

// StaleMandate lists accounts signed before today minus years. Accounts
// without a signed date are never stale.
func StaleMandate(accounts []accountModel.Account, names map[uuid.UUID]string, years int, today time.Time) []dto.AccountItem {
	y, m, d := today.Date()
	cutoff := time.Date(y-years, m, d, 0, 0, 0, 0, time.UTC)

	out := []dto.AccountItem{}
	for _, a := range accounts {
		if a.AccountSignedDate == nil {
			continue
		}
		sy, sm, sd := a.AccountSignedDate.Date()
		if time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC).Before(cutoff) {
			out = append(out, accountItem(a, names))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignedDate.Before(*out[j].SignedDate) })
	return out
}

func MissingAccount(active []schoolRepo.ActiveFamily, accounts []accountModel.Account) []dto.MissingAccountItem {
	has := make(map[uuid.UUID]bool, len(accounts))
	for _, a := range accounts {
		has[a.AccountFamilyID] = true
	}
	out := []dto.MissingAccountItem{}
	for _, f := range active {
		if has[f.FamilyID] {
			continue
		}
		out = append(out, dto.MissingAccountItem{
			FamilyID:       f.FamilyID,
			FamilyName:     f.FamilyName,
			ActiveStudents: f.ActiveStudents,
		})
	}
	return out
}

func balanceItem(b balanceDto.Balance, names map[uuid.UUID]string) dto.BalanceItem {
	return dto.BalanceItem{
		FamilyID:            b.FamilyID,
		FamilyName:          names[b.FamilyID],
		TotalFees:           b.TotalFees,
		TotalPayments:       b.TotalPayments,
		PositiveAdjustments: b.PositiveAdjustments,
		NegativeAdjustments: b.NegativeAdjustments,
		Balance:             b.Balance,
	}
}

// Shortfall compares what a family has paid with what it should have paid by
// the current point of the school year.
func Shortfall(b balanceDto.Balance, proportion decimal.Decimal) (expectedNow, actualPaid, shortfall decimal.Decimal) {
	actualPaid = b.TotalPayments.Add(b.PositiveAdjustments)
	expectedNow = b.TotalFees.Add(b.NegativeAdjustments).Mul(proportion).Round(2)
	return expectedNow, actualPaid, expectedNow.Sub(actualPaid)
}

// lowBalanceLimit is the shortfall a family may carry before being flagged.
//   - absolute:   threshold as an amount
//   - percentage: threshold percent of the year's charges
//   - proportion: threshold percent of what is expected by now
func lowBalanceLimit(method string, threshold decimal.Decimal, b balanceDto.Balance, expectedNow decimal.Decimal) decimal.Decimal {
	switch method {
	case MethodPercentage:
		return b.TotalFees.Add(b.NegativeAdjustments).Mul(threshold).Div(hundred)
	case MethodProportion:
		return expectedNow.Mul(threshold).Div(hundred)
	default:
		return threshold
	}
}

func LowBalance(balances []balanceDto.Balance, names map[uuid.UUID]string, proportion decimal.Decimal, method string, threshold decimal.Decimal) []dto.BalanceItem {
	out := []dto.BalanceItem{}
	for _, b := range balances {
		expectedNow, actualPaid, shortfall := Shortfall(b, proportion)
		if !shortfall.GreaterThan(lowBalanceLimit(method, threshold, b, expectedNow)) {
			continue
		}
		item := balanceItem(b, names)
		item.ExpectedNow = &expectedNow
		item.ActualPaid = &actualPaid
		item.Shortfall = &shortfall
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Shortfall.GreaterThan(*out[j].Shortfall) })
	return out
}

func HighBalance(balances []balanceDto.Balance, names map[uuid.UUID]string, threshold decimal.Decimal) []dto.BalanceItem {
	out := []dto.BalanceItem{}
	for _, b := range balances {
		if b.Balance.GreaterThan(threshold) {
			out = append(out, balanceItem(b, names))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Balance.GreaterThan(out[j].Balance) })
	return out
}

func UnlinkedPayments(payments []paymentModel.Payment) []dto.PaymentItem {
	out := make([]dto.PaymentItem, 0, len(payments))
	for _, p := range payments {
		if p.Linked() {
			continue
		}
		out = append(out, dto.PaymentItem{
			PaymentID:   p.PaymentID,
			BookingDate: p.PaymentBookingDate.Format("2006-01-02"),
			Payer:       p.PaymentPayerRaw,
			IBANMasked:  p.PaymentIBANMasked,
			Reference:   p.PaymentReference,
			Amount:      p.PaymentAmount,
		})
	}
	return out
}
