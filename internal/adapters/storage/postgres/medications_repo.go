package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"care-companion/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, patient_id,
			name, dosage, instructions,
			schedule_time, recurrence,
			stock, max_stock, last_taken,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		m.ID,
		m.PatientID,
		m.Name,
		m.Dosage,
		m.Instructions,
		m.ScheduleTime,
		m.Recurrence.String(),
		m.Stock,
		m.MaxStock,
		toNullDate(m.LastTaken),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $2,
			dosage = $3,
			instructions = $4,
			schedule_time = $5,
			recurrence = $6,
			stock = $7,
			max_stock = $8,
			last_taken = $9,
			updated_at = $10
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Instructions,
		m.ScheduleTime,
		m.Recurrence.String(),
		m.Stock,
		m.MaxStock,
		toNullDate(m.LastTaken),
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, patient_id,
			name, dosage, instructions,
			schedule_time, recurrence,
			stock, max_stock, last_taken,
			created_at, updated_at
		FROM medications
		WHERE id = $1
	`, id)

	m, err := scanMedication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return medications.Medication{}, ErrNotFound
		}
		return medications.Medication{}, err
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPatient(ctx context.Context, patientID string) ([]medications.Medication, error) {
	patientID = strings.TrimSpace(patientID)
	if patientID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, patient_id,
			name, dosage, instructions,
			schedule_time, recurrence,
			stock, max_stock, last_taken,
			created_at, updated_at
		FROM medications
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medications WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM medications WHERE patient_id = $1
	`, patientID)
	return err
}

func scanMedication(scan func(dest ...any) error) (medications.Medication, error) {
	var (
		m   medications.Medication
		rec string
		lt  sql.NullTime
	)
	if err := scan(
		&m.ID,
		&m.PatientID,
		&m.Name,
		&m.Dosage,
		&m.Instructions,
		&m.ScheduleTime,
		&rec,
		&m.Stock,
		&m.MaxStock,
		&lt,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}

	// recurrence se guarda en el formato heredado ("Daily" / "Mon,Wed").
	parsed, err := medications.ParseRecurrence(rec)
	if err != nil {
		// registro viejo ilegible: lo tratamos como diario para no romper lecturas
		parsed = medications.DailyRecurrence()
	}
	m.Recurrence = parsed

	if lt.Valid {
		// last_taken es DATE; pgx lo mapea a midnight UTC
		t := lt.Time
		m.LastTaken = &t
	}
	return m, nil
}

// last_taken es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
