package service

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/update_requests/dto"
	"sepaku_backend/internals/features/finance/update_requests/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
	"sepaku_backend/internals/helpers/secure"
)

const (
	dateLayout = "2006-01-02"

	// HashVersion is written on new requests. v2 is an unkeyed SHA-256 and is
	// only verified, never written.
	HashVersion       = "v3"
	legacyHashVersion = "v2"
)

// hashFields is the v2 and v3 field list. Values are the plaintext bank details.
var hashFields = []string{
	"family_id",
	"old_payer", "old_iban", "old_bic", "old_signed_date",
	"new_payer", "new_iban", "new_bic", "new_signed_date",
	"submitted_by",
}

type Repository interface {
	Create(ctx context.Context, m *model.UpdateRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.UpdateRequest, error)
	HasPending(ctx context.Context, familyID uuid.UUID) (bool, error)
	List(ctx context.Context, q dto.ListQuery) ([]model.UpdateRequest, int64, error)
	Decide(ctx context.Context, id uuid.UUID, fn func(m *model.UpdateRequest) (*dto.AccountChange, error)) error
}

type FieldCipher interface {
	Encrypt(plaintext *string) (*string, error)
	Decrypt(ciphertext *string) (*string, error)
	IntegrityKey() []byte
}

type AccountSource interface {
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]accountModel.Account, error)
}

type FamilyChecker interface {
	FamilyExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type CustomFieldValidator interface {
	Validate(ctx context.Context, values map[string]any) (datatypes.JSON, error)
}

type Service struct {
	repo     Repository
	cipher   FieldCipher
	hasher   *secure.Hasher
	hashers  map[string]*secure.Hasher
	accounts AccountSource
	families FamilyChecker
	fields   CustomFieldValidator
	validate *validator.Validate
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(
	repo Repository,
	cipher FieldCipher,
	accounts AccountSource,
	families FamilyChecker,
	fields CustomFieldValidator,
	v *validator.Validate,
	log zerolog.Logger,
) *Service {
	current := secure.NewKeyedHasher(HashVersion, cipher.IntegrityKey(), hashFields...)
	return &Service{
		repo:   repo,
		cipher: cipher,
		hasher: current,
		hashers: map[string]*secure.Hasher{
			HashVersion:       current,
			legacyHashVersion: secure.NewHasher(legacyHashVersion, hashFields...),
		},
		accounts: accounts,
		families: families,
		fields:   fields,
		validate: v,
		now:      time.Now,
		log:      log.With().Str("svc", "update_requests").Logger(),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

/* =========================================================
   HELPERS
========================================================= */

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optString(p *string) *string {
	if p == nil {
		return nil
	}
	return ptr(strings.TrimSpace(*p))
}

func auditContext(ctx map[string]any) datatypes.JSON {
	if len(ctx) == 0 {
		return nil
	}
	b, err := sonic.Marshal(ctx)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func hashValues(familyID uuid.UUID, submittedBy *uuid.UUID, old, neu dto.BankDetails) map[string]string {
	v := map[string]string{
		"family_id":       familyID.String(),
		"old_payer":       deref(old.Payer),
		"old_iban":        deref(old.IBAN),
		"old_bic":         deref(old.BIC),
		"old_signed_date": deref(old.SignedDate),
		"new_payer":       deref(neu.Payer),
		"new_iban":        deref(neu.IBAN),
		"new_bic":         deref(neu.BIC),
		"new_signed_date": deref(neu.SignedDate),
	}
	if submittedBy != nil {
		v["submitted_by"] = submittedBy.String()
	}
	return v
}

// encryptDetails encrypts the four bank fields in order payer, iban, bic, signed date.
func (s *Service) encryptDetails(d dto.BankDetails) ([4]*string, error) {
	var out [4]*string
	for i, p := range []*string{d.Payer, d.IBAN, d.BIC, d.SignedDate} {
		ct, err := s.cipher.Encrypt(p)
		if err != nil {
			return out, apperror.Crypto("encrypt bank details", err)
		}
		out[i] = ct
	}
	return out, nil
}

// decryptOrNil is the read-path decrypt: failures are logged and reported
// through ok=false instead of failing the whole read.
func (s *Service) decryptOrNil(id uuid.UUID, field string, ct *string) (*string, bool) {
	v, err := s.cipher.Decrypt(ct)
	if err != nil {
		s.log.Error().Err(err).
			Str("update_request_id", id.String()).
			Str("field", field).
			Msg("bank field could not be decrypted")
		return nil, false
	}
	return v, true
}

func (s *Service) toView(m *model.UpdateRequest) *dto.View {
	ok := true
	dec := func(field string, ct *string) *string {
		v, fine := s.decryptOrNil(m.UpdateRequestID, field, ct)
		ok = ok && fine
		return v
	}
	old := dto.BankDetails{
		Payer:      dec("old_payer", m.UpdateRequestOldPayer),
		IBAN:       dec("old_iban", m.UpdateRequestOldIBAN),
		BIC:        dec("old_bic", m.UpdateRequestOldBIC),
		SignedDate: dec("old_signed_date", m.UpdateRequestOldSignedDate),
	}
	neu := dto.BankDetails{
		Payer:      dec("new_payer", m.UpdateRequestNewPayer),
		IBAN:       dec("new_iban", m.UpdateRequestNewIBAN),
		BIC:        dec("new_bic", m.UpdateRequestNewBIC),
		SignedDate: dec("new_signed_date", m.UpdateRequestNewSignedDate),
	}

	integrity := dto.Integrity{Version: m.UpdateRequestHashVersion}
	hasher, known := s.hashers[m.UpdateRequestHashVersion]
	switch {
	case !ok, !known:
		integrity.Verification = secure.Verification{StoredHash: m.UpdateRequestIntegrityHash}
		integrity.Unverifiable = true
		integrity.Warning = true
	default:
		integrity.Verification = hasher.Verify(
			hashValues(m.UpdateRequestFamilyID, m.UpdateRequestSubmittedBy, old, neu),
			m.UpdateRequestIntegrityHash,
		)
		integrity.Warning = !integrity.Valid
	}
	if integrity.Warning {
		s.log.Warn().
			Str("update_request_id", m.UpdateRequestID.String()).
			Bool("unverifiable", integrity.Unverifiable).
			Msg("update request failed integrity verification")
	}

	return &dto.View{
		ID:                 m.UpdateRequestID,
		FamilyID:           m.UpdateRequestFamilyID,
		Status:             m.UpdateRequestStatus,
		Old:                old,
		New:                neu,
		NewNote:            m.UpdateRequestNewNote,
		NewCustomFields:    m.UpdateRequestNewCustomFields,
		Integrity:          integrity,
		SubmittedBy:        m.UpdateRequestSubmittedBy,
		SubmittedIP:        m.UpdateRequestSubmittedIP,
		SubmittedUserAgent: m.UpdateRequestSubmittedUserAgent,
		DecidedBy:          m.UpdateRequestDecidedBy,
		DecidedAt:          m.UpdateRequestDecidedAt,
		DecisionNote:       m.UpdateRequestDecisionNote,
		CreatedAt:          m.UpdateRequestCreatedAt,
	}
}

/* =========================================================
   OPERATIONS
========================================================= */

// Submit records a pending change of the family's bank details. The
// current account (if any) is captured as the old values.
func (s *Service) Submit(ctx context.Context, req dto.SubmitRequest, actor dto.Actor) (*dto.View, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	exists, err := s.families.FamilyExists(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("family")
	}
	pending, err := s.repo.HasPending(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperror.ErrPendingExists
	}
	custom, err := s.fields.Validate(ctx, req.CustomFields)
	if err != nil {
		return nil, err
	}

	var old dto.BankDetails
	current, err := s.accounts.ListByFamily(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		a := current[0]
		old.Payer = ptr(a.AccountPayer)
		old.IBAN = a.AccountIBANMasked
		if a.AccountSignedDate != nil {
			old.SignedDate = ptr(a.AccountSignedDate.Format(dateLayout))
		}
	}

	neu := dto.BankDetails{
		Payer:      ptr(strings.TrimSpace(req.Payer)),
		IBAN:       ptr(secure.NormalizeIBAN(req.IBAN)),
		SignedDate: optString(req.SignedDate),
	}
	if b := optString(req.BIC); b != nil {
		neu.BIC = ptr(strings.ToUpper(*b))
	}

	oldCT, err := s.encryptDetails(old)
	if err != nil {
		return nil, err
	}
	newCT, err := s.encryptDetails(neu)
	if err != nil {
		return nil, err
	}

	m := &model.UpdateRequest{
		UpdateRequestFamilyID:           req.FamilyID,
		UpdateRequestStatus:             model.StatusPending,
		UpdateRequestOldPayer:           oldCT[0],
		UpdateRequestOldIBAN:            oldCT[1],
		UpdateRequestOldBIC:             oldCT[2],
		UpdateRequestOldSignedDate:      oldCT[3],
		UpdateRequestNewPayer:           newCT[0],
		UpdateRequestNewIBAN:            newCT[1],
		UpdateRequestNewBIC:             newCT[2],
		UpdateRequestNewSignedDate:      newCT[3],
		UpdateRequestNewNote:            optString(req.Note),
		UpdateRequestNewCustomFields:    custom,
		UpdateRequestHashVersion:        s.hasher.Version(),
		UpdateRequestSubmittedIP:        ptr(actor.IP),
		UpdateRequestSubmittedUserAgent: ptr(actor.UserAgent),
		UpdateRequestSubmittedContext:   auditContext(actor.Context),
	}
	if actor.UserID != uuid.Nil {
		uid := actor.UserID
		m.UpdateRequestSubmittedBy = &uid
	}
	m.UpdateRequestIntegrityHash = s.hasher.ComputeHash(hashValues(req.FamilyID, m.UpdateRequestSubmittedBy, old, neu))

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("update_request_id", m.UpdateRequestID.String()).
		Str("family_id", req.FamilyID.String()).
		Msg("update request submitted")
	return s.toView(m), nil
}

func (s *Service) stampDecision(m *model.UpdateRequest, status model.Status, note *string, actor dto.Actor) {
	now := s.now()
	m.UpdateRequestStatus = status
	m.UpdateRequestDecidedAt = &now
	m.UpdateRequestDecisionNote = optString(note)
	m.UpdateRequestDecidedIP = ptr(actor.IP)
	m.UpdateRequestDecidedUserAgent = ptr(actor.UserAgent)
	m.UpdateRequestDecidedContext = auditContext(actor.Context)
	if actor.UserID != uuid.Nil {
		uid := actor.UserID
		m.UpdateRequestDecidedBy = &uid
	}
}

// Approve applies the requested bank details to the family's account and
// closes the request, all in one transaction.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, note *string, actor dto.Actor) (*dto.View, error) {
	var decided *model.UpdateRequest
	err := s.repo.Decide(ctx, id, func(m *model.UpdateRequest) (*dto.AccountChange, error) {
		if m.Decided() {
			return nil, apperror.ErrAlreadyDecided
		}

		var plain [4]*string
		for i, ct := range []*string{m.UpdateRequestNewPayer, m.UpdateRequestNewIBAN, m.UpdateRequestNewBIC, m.UpdateRequestNewSignedDate} {
			v, err := s.cipher.Decrypt(ct)
			if err != nil {
				return nil, apperror.Crypto("decrypt requested bank details", err)
			}
			plain[i] = v
		}
		var signed *time.Time
		if plain[3] != nil {
			t, err := time.Parse(dateLayout, *plain[3])
			if err != nil {
				return nil, apperror.Crypto("decode requested signed date", err)
			}
			signed = &t
		}

		s.stampDecision(m, model.StatusApproved, note, actor)
		decided = m

		change := &dto.AccountChange{
			FamilyID:     m.UpdateRequestFamilyID,
			Payer:        deref(plain[0]),
			IBANMasked:   secure.MaskIBAN(plain[1]),
			SignedDate:   signed,
			Note:         m.UpdateRequestNewNote,
			CustomFields: m.UpdateRequestNewCustomFields,
			Actor:        m.UpdateRequestDecidedBy,
		}
		// plain[2] holds the BIC, which is never copied to the account.
		return change, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("update_request_id", id.String()).Str("actor", actor.UserID.String()).Msg("update request approved")
	return s.toView(decided), nil
}

// Reject closes the request without touching the account.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, note *string, actor dto.Actor) (*dto.View, error) {
	var decided *model.UpdateRequest
	err := s.repo.Decide(ctx, id, func(m *model.UpdateRequest) (*dto.AccountChange, error) {
		if m.Decided() {
			return nil, apperror.ErrAlreadyDecided
		}
		s.stampDecision(m, model.StatusRejected, note, actor)
		decided = m
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("update_request_id", id.String()).Str("actor", actor.UserID.String()).Msg("update request rejected")
	return s.toView(decided), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*dto.View, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(m), nil
}

func (s *Service) HasPending(ctx context.Context, familyID uuid.UUID) (bool, error) {
	return s.repo.HasPending(ctx, familyID)
}

func (s *Service) List(ctx context.Context, q dto.ListQuery) ([]dto.View, int64, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, 0, apperror.Validation("status must be one of pending, approved, rejected")
	}
	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.View, 0, len(rows))
	for i := range rows {
		out = append(out, *s.toView(&rows[i]))
	}
	return out, total, nil
}
