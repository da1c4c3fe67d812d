package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/allisson/passvault/internal/crypto/domain"
	"github.com/allisson/passvault/internal/database"
	vaultDomain "github.com/allisson/passvault/internal/vault/domain"
	appValidation "github.com/allisson/passvault/internal/validation"
)

type vaultUseCase struct {
	txManager  database.TxManager
	recordRepo RecordRepository
	cipher     SecretCipher
	scorer     StrengthScorer
	now        func() time.Time
}

// NewVaultUseCase creates a VaultUseCase. now is the clock used for creation
// times and expiry; nil means time.Now.
func NewVaultUseCase(
	txManager database.TxManager,
	recordRepo RecordRepository,
	cipher SecretCipher,
	scorer StrengthScorer,
	now func() time.Time,
) VaultUseCase {
	if now == nil {
		now = time.Now
	}
	return &vaultUseCase{
		txManager:  txManager,
		recordRepo: recordRepo,
		cipher:     cipher,
		scorer:     scorer,
		now:        now,
	}
}

func (v *vaultUseCase) List(ctx context.Context, ownerID uuid.UUID) ([]*vaultDomain.RecordView, error) {
	records, err := v.recordRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := v.now().UTC()
	views := make([]*vaultDomain.RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, v.view(record, now))
	}
	return views, nil
}

func (v *vaultUseCase) Get(ctx context.Context, ownerID, recordID uuid.UUID) (*vaultDomain.RecordView, error) {
	record, err := v.recordRepo.GetByID(ctx, ownerID, recordID)
	if err != nil {
		return nil, err
	}
	return v.view(record, v.now().UTC()), nil
}

func (v *vaultUseCase) view(record *vaultDomain.Record, now time.Time) *vaultDomain.RecordView {
	view := &vaultDomain.RecordView{
		ID:              record.ID,
		Title:           record.Title,
		URL:             record.URL,
		AccountUsername: record.AccountUsername,
		CreatedAt:       record.CreatedAt,
		ExpiresAt:       record.ExpiresAt,
		Expired:         record.IsExpired(now),
	}

	secret, err := v.cipher.Decrypt(record.EncryptedSecret)
	if err != nil {
		view.Err = cryptoDomain.ErrDecryptionFailed
		return view
	}
	view.Secret = secret
	return view
}

func (v *vaultUseCase) Add(
	ctx context.Context,
	ownerID uuid.UUID,
	input vaultDomain.AddRecordInput,
) (*vaultDomain.AddRecordOutput, error) {
	err := validation.Errors{
		"title": validation.Validate(input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			appValidation.MaxRunes(255),
		),
		"password": validation.Validate(input.Secret,
			validation.Required.Error("password is required"),
		),
		"username":     validation.Validate(input.AccountUsername, appValidation.MaxRunes(255)),
		"expires_days": validation.Validate(input.ExpiresDays, validation.Max(vaultDomain.MaxExpiresDays)),
	}.Filter()
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	encrypted, err := v.cipher.Encrypt(input.Secret)
	if err != nil {
		return nil, err
	}

	now := v.now().UTC()
	record := &vaultDomain.Record{
		ID:              uuid.Must(uuid.NewV7()),
		OwnerID:         ownerID,
		Title:           input.Title,
		EncryptedSecret: encrypted,
		URL:             input.URL,
		AccountUsername: input.AccountUsername,
		CreatedAt:       now,
	}
	if input.ExpiresDays != nil {
		record.ExpiresAt = vaultDomain.ExpiresAt(now, *input.ExpiresDays)
	}

	if err := v.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &vaultDomain.AddRecordOutput{
		Record:   record,
		Strength: v.scorer.Score(input.Secret),
	}, nil
}

func (v *vaultUseCase) Update(
	ctx context.Context,
	ownerID, recordID uuid.UUID,
	patch vaultDomain.RecordPatch,
) error {
	err := validation.Errors{
		"title": validation.Validate(patch.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			appValidation.NotBlank,
			appValidation.MaxRunes(255),
		),
		"password": validation.Validate(patch.Secret,
			validation.NilOrNotEmpty.Error("password must not be empty"),
		),
		"username":     validation.Validate(patch.AccountUsername, appValidation.MaxRunes(255)),
		"expires_days": validation.Validate(patch.ExpiresDays, validation.Max(vaultDomain.MaxExpiresDays)),
	}.Filter()
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	changes := vaultDomain.RecordChanges{
		Title:           patch.Title,
		URL:             patch.URL,
		AccountUsername: patch.AccountUsername,
	}
	if patch.Secret != nil {
		changes.EncryptedSecret, err = v.cipher.Encrypt(*patch.Secret)
		if err != nil {
			return err
		}
	}
	if patch.ExpiresDays != nil {
		changes.SetExpiresAt = true
		changes.ExpiresAt = vaultDomain.ExpiresAt(v.now().UTC(), *patch.ExpiresDays)
	}

	return v.txManager.WithTx(ctx, func(ctx context.Context) error {
		if changes.IsEmpty() {
			_, err := v.recordRepo.GetByID(ctx, ownerID, recordID)
			return err
		}
		return v.recordRepo.Update(ctx, ownerID, recordID, changes)
	})
}
