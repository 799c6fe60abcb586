package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
)

// ErrInvalidCSV is returned when an import file cannot be read.
var ErrInvalidCSV = errors.New("invalid applicant csv")

// Header is the CSV column order used for export.
var Header = []string{"Name", "Phone", "Email", "Job Position", "Status", "Address", "Rating", "Tags", "Created At", "Avatar"}

var requiredColumns = []string{"name", "phone", "email", "job position", "status", "address"}

const tagSeparator = ";"

// Cells returns the record's values in Header order.
func (r Record) Cells() []string {
	return []string{
		r.Name, r.Phone, r.Email, r.JobPosition, r.Status, r.Address, r.Rating,
		strings.Join(r.Tags, tagSeparator), r.CreatedAt.Format(time.RFC3339), r.Avatar,
	}
}

func writeCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is one applicant read from CSV, not yet validated.
type Row struct {
	// CreatedAt is zero when the file has no creation time.
	CreatedAt time.Time
	Fields    model.ApplicantFields
	Avatar    string
	Line      int
	Rating    model.Rating
}

// ReadCSV reads applicants from a file laid out like Header. Columns are
// matched by name, ignoring case, and only the contact columns are required.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrInvalidCSV, err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := columns[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidCSV, c)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
		}

		get := func(name string) string {
			if i, ok := columns[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		row := Row{
			Line: line,
			Fields: model.ApplicantFields{
				Name:        get("name"),
				Phone:       get("phone"),
				Email:       get("email"),
				JobPosition: get("job position"),
				Status:      get("status"),
				Address:     get("address"),
			},
			Avatar: get("avatar"),
		}
		if tags := get("tags"); tags != "" {
			row.Fields.Tags = strings.Split(tags, tagSeparator)
		}
		if rating := get("rating"); rating != "" {
			if row.Rating, err = model.ParseRating(rating); err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
			}
		}
		if created := get("created at"); created != "" {
			if row.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
				return nil, fmt.Errorf("%w: line %d: bad created at %q", ErrInvalidCSV, line, created)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Applicant validates the row and builds an applicant, using now when the
// row carries no creation time.
func (r Row) Applicant(now time.Time) (model.Applicant, error) {
	created := r.CreatedAt
	if created.IsZero() {
		created = now
	}
	a, err := model.NewApplicant(r.Fields, r.Rating, created)
	if err != nil {
		return model.Applicant{}, fmt.Errorf("line %d: %w", r.Line, err)
	}
	if r.Avatar != "" {
		a = a.WithAvatar(r.Avatar)
	}
	return a, nil
}
