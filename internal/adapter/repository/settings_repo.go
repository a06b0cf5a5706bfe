package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"chmfc/internal/core"

	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBSettingsRepo struct {
	app pbCore.App
}

func NewSettingsRepo(app pbCore.App) core.SettingsRepository {
	return &PBSettingsRepo{app: app}
}

func (r *PBSettingsRepo) record() (*pbCore.Record, error) {
	return r.app.FindFirstRecordByData(core.CollectionSettings, "key", core.PaymentSettingsKey)
}

// Payment returns the payment singleton. A missing row reads as empty settings.
func (r *PBSettingsRepo) Payment() (*core.PaymentSettings, error) {
	rec, err := r.record()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &core.PaymentSettings{}, nil
		}
		return nil, fmt.Errorf("payment settings: %w", err)
	}

	return &core.PaymentSettings{
		BankName:       rec.GetString("bank_name"),
		AccountNumber:  rec.GetString("account_number"),
		AccountName:    rec.GetString("account_name"),
		WhatsAppNumber: rec.GetString("whatsapp_number"),
	}, nil
}

// SavePayment upserts the singleton, writing all four fields
func (r *PBSettingsRepo) SavePayment(s *core.PaymentSettings) error {
	rec, err := r.record()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("payment settings: %w", err)
		}
		if rec, err = newRecord(r.app, core.CollectionSettings); err != nil {
			return err
		}
		rec.Set("key", core.PaymentSettingsKey)
	}

	rec.Set("bank_name", s.BankName)
	rec.Set("account_number", s.AccountNumber)
	rec.Set("account_name", s.AccountName)
	rec.Set("whatsapp_number", s.WhatsAppNumber)

	return r.app.Save(rec)
}
