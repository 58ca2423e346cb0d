package service

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/payments/dto"
	helper "sepaku_backend/internals/helpers"
)

// MatchCandidates returns every account whose payer equals payerName after
// lowercasing and removing all whitespace. No fuzzy matching happens here.
func MatchCandidates(accounts []accountModel.Account, payerName string) []accountModel.Account {
	key := helper.NormalizePayer(payerName)
	if key == "" {
		return nil
	}
	var out []accountModel.Account
	for _, a := range accounts {
		if helper.NormalizePayer(a.AccountPayer) == key {
			out = append(out, a)
		}
	}
	return out
}

// Outcome applies the linking policy: exactly one candidate links.
func Outcome(candidates []accountModel.Account) dto.MatchOutcome {
	switch len(candidates) {
	case 1:
		return dto.MatchLinked
	case 0:
		return dto.MatchUnmatched
	default:
		return dto.MatchAmbiguous
	}
}

// RankSuggestions orders accounts by edit distance between normalized names,
// nearest first, ties by payer. limit <= 0 keeps everything.
func RankSuggestions(accounts []accountModel.Account, payerName string, limit int) []dto.Suggestion {
	key := []rune(helper.NormalizePayer(payerName))
	out := make([]dto.Suggestion, 0, len(accounts))
	for _, a := range accounts {
		d := levenshtein.DistanceForStrings(key, []rune(helper.NormalizePayer(a.AccountPayer)), levenshtein.DefaultOptionsWithSub)
		out = append(out, dto.Suggestion{Account: a, Distance: d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Account.AccountPayer < out[j].Account.AccountPayer
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
