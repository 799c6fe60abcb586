package predicate

import (
	"testing"
	"time"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applicant(name, job string, status model.Status, created time.Time) model.Applicant {
	return model.Applicant{
		ID:          name,
		Name:        name,
		Phone:       "98765432",
		Email:       "someone@example.com",
		JobPosition: job,
		Status:      status,
		Address:     "1 Main St",
		CreatedAt:   created,
	}
}

func TestFieldEquals(t *testing.T) {
	a := applicant("Alex Yeoh", "Software Engineer", model.StatusInterviewed, time.Now())

	tests := []struct {
		name    string
		field   Field
		keyword string
		want    bool
	}{
		{name: "exact name", field: FieldName, keyword: "Alex Yeoh", want: true},
		{name: "name ignores case", field: FieldName, keyword: "alex yeoh", want: true},
		{name: "partial name does not match", field: FieldName, keyword: "Alex", want: false},
		{name: "job", field: FieldJob, keyword: "software engineer", want: true},
		{name: "status", field: FieldStatus, keyword: "INTERVIEWED", want: true},
		{name: "wrong status", field: FieldStatus, keyword: "Offered", want: false},
		{name: "phone", field: FieldPhone, keyword: "98765432", want: true},
		{name: "email", field: FieldEmail, keyword: "SOMEONE@example.com", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewFieldEquals(tt.field, tt.keyword)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Test(a))
		})
	}
}

func TestNewFieldEquals_Blank(t *testing.T) {
	_, err := NewFieldEquals(FieldName, "  ")
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestCreatedComparisons(t *testing.T) {
	onDay := applicant("A", "Dev", model.StatusPreliminary, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	later := applicant("B", "Dev", model.StatusPreliminary, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	earlier := applicant("C", "Dev", model.StatusPreliminary, time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC))

	after, err := NewCreatedAfter("2024-03-01")
	require.NoError(t, err)
	before, err := NewCreatedBefore("2024-03-01")
	require.NoError(t, err)

	assert.False(t, after.Test(onDay), "after is strict")
	assert.True(t, after.Test(later))
	assert.False(t, after.Test(earlier))

	assert.False(t, before.Test(onDay), "before is strict")
	assert.True(t, before.Test(earlier))
	assert.False(t, before.Test(later))
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"2024-13-01", "01/03/2024", "yesterday", ""} {
		_, err := NewCreatedAfter(input)
		assert.ErrorIs(t, err, ErrInvalidCriteria, input)
		_, err = NewCreatedBefore(input)
		assert.ErrorIs(t, err, ErrInvalidCriteria, input)
	}
}

func TestCombinators(t *testing.T) {
	engineer := applicant("A", "Engineer", model.StatusInterviewed, time.Now())
	designer := applicant("B", "Designer", model.StatusInterviewed, time.Now())
	offered := applicant("C", "Engineer", model.StatusOffered, time.Now())

	job := FieldEquals{Field: FieldJob, Keyword: "Engineer"}
	status := FieldEquals{Field: FieldStatus, Keyword: "Interviewed"}

	all := All(job, status)
	assert.True(t, all.Test(engineer))
	assert.False(t, all.Test(designer))
	assert.False(t, all.Test(offered))

	anyOf := Any(job, status)
	assert.True(t, anyOf.Test(engineer))
	assert.True(t, anyOf.Test(designer))
	assert.True(t, anyOf.Test(offered))

	assert.True(t, All().Test(designer), "empty conjunction matches everything")
	assert.False(t, Any().Test(designer), "empty disjunction matches nothing")
	assert.True(t, Everything.Test(designer))
}

func TestEqual(t *testing.T) {
	a1, _ := NewFieldEquals(FieldName, "Alex")
	a2, _ := NewFieldEquals(FieldName, "Alex")
	b, _ := NewFieldEquals(FieldJob, "Alex")
	d1, _ := NewCreatedAfter("2024-01-01")
	d2, _ := NewCreatedAfter("2024-01-01")
	d3, _ := NewCreatedBefore("2024-01-01")

	assert.True(t, Equal(a1, a2))
	assert.False(t, Equal(a1, b))
	assert.True(t, Equal(d1, d2))
	assert.False(t, Equal(d1, d3), "different variant with same date")
	assert.True(t, Equal(All(a1, d1), All(a2, d2)))
	assert.False(t, Equal(All(a1, d1), Any(a2, d2)))
	assert.False(t, Equal(All(a1, d1), All(d1, a1)), "order matters")
	assert.True(t, Equal(Everything, Everything))
}

func TestBuild_RegistryOrder(t *testing.T) {
	ps, err := Build(map[string]string{
		"ad/": "2024-01-01",
		"s/":  "Offered",
		"n/":  "Alex",
	})
	require.NoError(t, err)
	require.Len(t, ps, 3)

	assert.Equal(t, FieldEquals{Field: FieldName, Keyword: "Alex"}, ps[0])
	assert.Equal(t, FieldEquals{Field: FieldStatus, Keyword: "Offered"}, ps[1])
	assert.IsType(t, CreatedAfter{}, ps[2])
}

func TestBuild_InvalidDate(t *testing.T) {
	_, err := Build(map[string]string{"bd/": "soon"})
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	var ce *CriteriaError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, `"soon" is not a valid date, expected YYYY-MM-DD`, ce.Reason)
	assert.Equal(t, `invalid criteria: "soon" is not a valid date, expected YYYY-MM-DD`, err.Error())
}

func TestPrefixes(t *testing.T) {
	assert.Equal(t, []string{"n/", "p/", "e/", "j/", "s/", "bd/", "ad/"}, Prefixes())
}
