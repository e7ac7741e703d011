package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

const uniqueViolation = "23505"

// pgRow is satisfied by pgx.Row and pgx.Rows
type pgRow interface {
	Scan(dest ...any) error
}

func parseID(id string) (pgtype.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, false
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, true
}

func uuidToString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func dateToPg(date string) (pgtype.Date, error) {
	t, err := util.ParseDate(date)
	if err != nil {
		return pgtype.Date{}, fmt.Errorf("%q: %w", date, domain.ErrInvalidDate)
	}
	return pgtype.Date{Time: t, Valid: true}, nil
}

func pgDateToString(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return util.FormatDate(time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
