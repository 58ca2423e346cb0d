package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sepaku_backend/internals/features/finance/issues/dto"
	"sepaku_backend/internals/features/finance/issues/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

const (
	KeyDetectDuplicateIBAN    = "detect_duplicate_iban"
	KeyDetectSimilarPayer     = "detect_similar_payer"
	KeySimilarPayerAlgorithm  = "similar_payer_algorithm"
	KeyDetectStaleMandate     = "detect_stale_mandate"
	KeyOldMandateYears        = "old_mandate_years"
	KeyDetectMissingAccount   = "detect_missing_account"
	KeyDetectLowBalance       = "detect_low_balance"
	KeyLowBalanceMethod       = "low_balance_method"
	KeyLowBalanceThreshold    = "low_balance_threshold"
	KeyDetectHighBalance      = "detect_high_balance"
	KeyHighBalanceThreshold   = "high_balance_threshold"
	KeyDetectDuplicateAccount = "detect_duplicate_account"
	KeyDetectUnlinkedPayment  = "detect_unlinked_payment"
)

const (
	AlgorithmSoundex   = "soundex"
	AlgorithmMetaphone = "metaphone"

	MethodAbsolute   = "absolute"
	MethodPercentage = "percentage"
	MethodProportion = "proportion"
)

type settingKind int

const (
	kindBool settingKind = iota
	kindInt
	kindAmount
	kindEnum
)

type settingDef struct {
	Key         string
	Default     string
	Description string
	kind        settingKind
	choices     []string
}

// Defaults lists every known setting in display order.
var Defaults = []settingDef{
	{KeyDetectDuplicateIBAN, "true", "Report accounts sharing the same masked IBAN", kindBool, nil},
	{KeyDetectSimilarPayer, "true", "Report payers whose names sound alike (review only)", kindBool, nil},
	{KeySimilarPayerAlgorithm, AlgorithmMetaphone, "Phonetic encoding for similar payers: soundex or metaphone", kindEnum, []string{AlgorithmSoundex, AlgorithmMetaphone}},
	{KeyDetectStaleMandate, "true", "Report mandates signed too long ago", kindBool, nil},
	{KeyOldMandateYears, "3", "Age in years after which a mandate counts as stale", kindInt, nil},
	{KeyDetectMissingAccount, "true", "Report enrolled families without an account", kindBool, nil},
	{KeyDetectLowBalance, "true", "Report families paying behind schedule", kindBool, nil},
	{KeyLowBalanceMethod, MethodAbsolute, "Low balance threshold: absolute, percentage or proportion", kindEnum, []string{MethodAbsolute, MethodPercentage, MethodProportion}},
	{KeyLowBalanceThreshold, "50", "Allowed shortfall (amount, or percent for percentage/proportion)", kindAmount, nil},
	{KeyDetectHighBalance, "true", "Report families with a large credit", kindBool, nil},
	{KeyHighBalanceThreshold, "100", "Balance above which a family counts as overpaid", kindAmount, nil},
	{KeyDetectDuplicateAccount, "true", "Report families with more than one account", kindBool, nil},
	{KeyDetectUnlinkedPayment, "true", "Report payments not linked to an account", kindBool, nil},
}

func lookupDef(key string) (settingDef, bool) {
	for _, d := range Defaults {
		if d.Key == key {
			return d, true
		}
	}
	return settingDef{}, false
}

// normalize validates raw against the setting's kind and returns its stored form.
func (d settingDef) normalize(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	switch d.kind {
	case kindBool:
		b, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return "", apperror.ValidationFields("invalid setting", map[string][]string{"value": {"must be true or false"}})
		}
		return strconv.FormatBool(b), nil
	case kindInt:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return "", apperror.ValidationFields("invalid setting", map[string][]string{"value": {"must be a non-negative whole number"}})
		}
		return strconv.Itoa(n), nil
	case kindAmount:
		a, err := decimal.NewFromString(v)
		if err != nil || a.IsNegative() {
			return "", apperror.ValidationFields("invalid setting", map[string][]string{"value": {"must be a non-negative number"}})
		}
		return a.String(), nil
	case kindEnum:
		v = strings.ToLower(v)
		for _, c := range d.choices {
			if c == v {
				return v, nil
			}
		}
		return "", apperror.ValidationFields("invalid setting", map[string][]string{"value": {"must be one of " + strings.Join(d.choices, ", ")}})
	}
	return v, nil
}

// Settings is a typed view of the settings table at one point in time.
type Settings struct {
	DetectDuplicateIBAN    bool
	DetectSimilarPayer     bool
	SimilarPayerAlgorithm  string
	DetectStaleMandate     bool
	OldMandateYears        int
	DetectMissingAccount   bool
	DetectLowBalance       bool
	LowBalanceMethod       string
	LowBalanceThreshold    decimal.Decimal
	DetectHighBalance      bool
	HighBalanceThreshold   decimal.Decimal
	DetectDuplicateAccount bool
	DetectUnlinkedPayment  bool
}

// Enabled reports the toggle that guards t.
func (s Settings) Enabled(t dto.IssueType) bool {
	switch t {
	case dto.IssueDuplicateIBAN:
		return s.DetectDuplicateIBAN
	case dto.IssueSimilarPayer:
		return s.DetectSimilarPayer
	case dto.IssueStaleMandate:
		return s.DetectStaleMandate
	case dto.IssueMissingAccount:
		return s.DetectMissingAccount
	case dto.IssueLowBalance:
		return s.DetectLowBalance
	case dto.IssueHighBalance:
		return s.DetectHighBalance
	case dto.IssueDuplicateAccount:
		return s.DetectDuplicateAccount
	case dto.IssueUnlinkedPayment:
		return s.DetectUnlinkedPayment
	}
	return false
}

// ParseSettings builds Settings from stored values. Unknown keys are ignored;
// missing or unparsable values fall back to their defaults.
func ParseSettings(values map[string]string) Settings {
	get := func(key string) string {
		d, _ := lookupDef(key)
		if raw, ok := values[key]; ok {
			if v, err := d.normalize(raw); err == nil {
				return v
			}
		}
		return d.Default
	}
	b := func(key string) bool { v, _ := strconv.ParseBool(get(key)); return v }
	amount := func(key string) decimal.Decimal { return decimal.RequireFromString(get(key)) }
	years, _ := strconv.Atoi(get(KeyOldMandateYears))

	return Settings{
		DetectDuplicateIBAN:    b(KeyDetectDuplicateIBAN),
		DetectSimilarPayer:     b(KeyDetectSimilarPayer),
		SimilarPayerAlgorithm:  get(KeySimilarPayerAlgorithm),
		DetectStaleMandate:     b(KeyDetectStaleMandate),
		OldMandateYears:        years,
		DetectMissingAccount:   b(KeyDetectMissingAccount),
		DetectLowBalance:       b(KeyDetectLowBalance),
		LowBalanceMethod:       get(KeyLowBalanceMethod),
		LowBalanceThreshold:    amount(KeyLowBalanceThreshold),
		DetectHighBalance:      b(KeyDetectHighBalance),
		HighBalanceThreshold:   amount(KeyHighBalanceThreshold),
		DetectDuplicateAccount: b(KeyDetectDuplicateAccount),
		DetectUnlinkedPayment:  b(KeyDetectUnlinkedPayment),
	}
}

/* =========================================================
   STORE
========================================================= */

type SettingsRepository interface {
	All(ctx context.Context) ([]model.IssueSetting, error)
	InsertMissing(ctx context.Context, rows []model.IssueSetting) error
	Upsert(ctx context.Context, m *model.IssueSetting) error
}

// SettingsStore reads settings fresh on every call; nothing is cached.
type SettingsStore struct {
	repo     SettingsRepository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewSettingsStore(repo SettingsRepository, v *validator.Validate, log zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		repo:     repo,
		validate: v,
		log:      log.With().Str("svc", "issue_settings").Logger(),
	}
}

// List returns every known setting, seeding defaults for keys not stored yet.
func (s *SettingsStore) List(ctx context.Context) ([]model.IssueSetting, error) {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(rows))
	for _, r := range rows {
		have[r.IssueSettingKey] = true
	}
	var missing []model.IssueSetting
	for _, d := range Defaults {
		if !have[d.Key] {
			missing = append(missing, model.IssueSetting{
				IssueSettingKey:         d.Key,
				IssueSettingValue:       d.Default,
				IssueSettingDescription: d.Description,
			})
		}
	}
	if len(missing) == 0 {
		return rows, nil
	}
	if err := s.repo.InsertMissing(ctx, missing); err != nil {
		return nil, err
	}
	s.log.Info().Int("seeded", len(missing)).Msg("issue settings defaults created")
	return s.repo.All(ctx)
}

func (s *SettingsStore) Load(ctx context.Context) (Settings, error) {
	rows, err := s.List(ctx)
	if err != nil {
		return Settings{}, err
	}
	values := make(map[string]string, len(rows))
	for _, r := range rows {
		values[r.IssueSettingKey] = r.IssueSettingValue
	}
	return ParseSettings(values), nil
}

// Get returns the stored value of key, or its default.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	d, ok := lookupDef(key)
	if !ok {
		return "", apperror.NotFound("issue setting")
	}
	rows, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range rows {
		if r.IssueSettingKey == key {
			return r.IssueSettingValue, nil
		}
	}
	return d.Default, nil
}

func (s *SettingsStore) Set(ctx context.Context, key string, req dto.UpdateSettingRequest, actor uuid.UUID) (*model.IssueSetting, error) {
	d, ok := lookupDef(key)
	if !ok {
		return nil, apperror.NotFound("issue setting")
	}
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	v, err := d.normalize(req.Value)
	if err != nil {
		return nil, err
	}

	m := &model.IssueSetting{
		IssueSettingKey:         d.Key,
		IssueSettingValue:       v,
		IssueSettingDescription: d.Description,
	}
	if actor != uuid.Nil {
		m.IssueSettingUpdatedBy = &actor
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("key", key).Str("value", v).Str("actor", actor.String()).Msg("issue setting updated")
	return m, nil
}
