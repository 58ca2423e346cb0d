package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepaku_backend/internals/features/finance/issues/dto"
	"sepaku_backend/internals/features/finance/issues/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type memSettings struct {
	rows    map[string]model.IssueSetting
	inserts int
}

func newMemSettings() *memSettings {
	return &memSettings{rows: map[string]model.IssueSetting{}}
}

func (m *memSettings) All(context.Context) ([]model.IssueSetting, error) {
	out := make([]model.IssueSetting, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueSettingKey < out[j].IssueSettingKey })
	return out, nil
}

func (m *memSettings) InsertMissing(_ context.Context, rows []model.IssueSetting) error {
	for _, r := range rows {
		if _, ok := m.rows[r.IssueSettingKey]; !ok {
			m.rows[r.IssueSettingKey] = r
			m.inserts++
		}
	}
	return nil
}

func (m *memSettings) Upsert(_ context.Context, r *model.IssueSetting) error {
	m.rows[r.IssueSettingKey] = *r
	return nil
}

func newStore(repo *memSettings) *SettingsStore {
	return NewSettingsStore(repo, helper.NewValidator(), zerolog.Nop())
}

func TestSettingsStore_SeedsDefaultsOnce(t *testing.T) {
	repo := newMemSettings()
	store := newStore(repo)

	rows, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, len(Defaults))
	assert.Equal(t, len(Defaults), repo.inserts)

	_, err = store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(Defaults), repo.inserts)

	v, err := store.Get(context.Background(), KeyOldMandateYears)
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestSettingsStore_DefaultsParse(t *testing.T) {
	s, err := newStore(newMemSettings()).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, s.DetectDuplicateIBAN)
	assert.Equal(t, AlgorithmMetaphone, s.SimilarPayerAlgorithm)
	assert.Equal(t, 3, s.OldMandateYears)
	assert.Equal(t, MethodAbsolute, s.LowBalanceMethod)
	assert.Equal(t, "50", s.LowBalanceThreshold.String())
	assert.Equal(t, "100", s.HighBalanceThreshold.String())
	for _, typ := range dto.AllIssueTypes {
		assert.True(t, s.Enabled(typ), typ)
	}
}

func TestSettingsStore_Set(t *testing.T) {
	repo := newMemSettings()
	store := newStore(repo)
	actor := uuid.New()

	m, err := store.Set(context.Background(), KeyLowBalanceMethod, dto.UpdateSettingRequest{Value: " Percentage "}, actor)
	require.NoError(t, err)
	assert.Equal(t, MethodPercentage, m.IssueSettingValue)
	assert.Equal(t, &actor, m.IssueSettingUpdatedBy)

	_, err = store.Set(context.Background(), KeyDetectLowBalance, dto.UpdateSettingRequest{Value: "FALSE"}, actor)
	require.NoError(t, err)

	s, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MethodPercentage, s.LowBalanceMethod)
	assert.False(t, s.DetectLowBalance)
	assert.False(t, s.Enabled(dto.IssueLowBalance))
}

func TestSettingsStore_SetRejectsBadValues(t *testing.T) {
	store := newStore(newMemSettings())
	ctx := context.Background()

	_, err := store.Set(ctx, "no_such_key", dto.UpdateSettingRequest{Value: "1"}, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	cases := map[string]string{
		KeyOldMandateYears:       "-1",
		KeyLowBalanceThreshold:   "abc",
		KeyHighBalanceThreshold:  "-5",
		KeyDetectStaleMandate:    "maybe",
		KeySimilarPayerAlgorithm: "nysiis",
	}
	for key, value := range cases {
		_, err := store.Set(ctx, key, dto.UpdateSettingRequest{Value: value}, uuid.Nil)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), key)
	}

	_, err = store.Set(ctx, KeyOldMandateYears, dto.UpdateSettingRequest{}, uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestParseSettings_FallsBackOnGarbage(t *testing.T) {
	s := ParseSettings(map[string]string{
		KeyOldMandateYears:     "ten",
		KeyLowBalanceThreshold: "12.5",
		"unknown":              "x",
	})
	assert.Equal(t, 3, s.OldMandateYears)
	assert.Equal(t, "12.5", s.LowBalanceThreshold.String())
}
