package employee

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func newTestEmployee(t *testing.T) *Employee {
	t.Helper()
	e, err := NewEmployee(uuid.New(), "Jan", "Kowalski", "Jan.Kowalski@Example.com", "jan-kowalski", "", nil)
	require.NoError(t, err)
	e.ClearDomainEvents()
	return e
}

func TestNewEmployee(t *testing.T) {
	t.Run("creates employee with lower-case e-mail", func(t *testing.T) {
		e := newTestEmployee(t)
		assert.Equal(t, "jan.kowalski@example.com", e.Email)
		assert.Equal(t, "Jan Kowalski", e.FullName())
		assert.True(t, e.IsActive)
	})

	t.Run("requires user", func(t *testing.T) {
		_, err := NewEmployee(uuid.Nil, "Jan", "Kowalski", "jan@example.com", "jan", "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid e-mail", func(t *testing.T) {
		_, err := NewEmployee(uuid.New(), "Jan", "Kowalski", "not-an-email", "jan", "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("rejects tax id longer than 20", func(t *testing.T) {
		_, err := NewEmployee(uuid.New(), "Jan", "Kowalski", "jan@example.com", "jan", "123456789012345678901", nil)
		assert.Error(t, err)
	})
}

func TestEmployee_UpdateProfile(t *testing.T) {
	e := newTestEmployee(t)

	err := e.UpdateProfile("jan@example.com", "", "", nil)
	require.Error(t, err)
	assert.Equal(t, "Slug cannot be empty.", err.Error())

	assert.Error(t, e.UpdateProfile("jan@example.com", "Not A Slug", "", nil))

	require.NoError(t, e.UpdateProfile("jan@example.com", "jk", "PL123", nil))
	assert.Equal(t, "jk", e.Slug)
	assert.Equal(t, "PL123", e.TaxID)
}

func TestEmployee_SyncName(t *testing.T) {
	e := newTestEmployee(t)

	changed, err := e.SyncName("Jan", "Kowalski")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, e.GetDomainEvents())

	changed, err = e.SyncName("Janusz", "Kowalski")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Janusz", e.FirstName)
	assert.Len(t, e.GetDomainEvents(), 1)
}

func TestEmployee_Avatar(t *testing.T) {
	e := newTestEmployee(t)
	photo := []byte("jpeg bytes")

	assert.False(t, e.AvatarChanged(nil))
	assert.True(t, e.AvatarChanged(photo))

	e.SetAvatar("avatars/x.jpg", AvatarChecksum(photo))
	assert.False(t, e.AvatarChanged(photo))
	assert.True(t, e.AvatarChanged([]byte("other")))
	assert.Len(t, e.AvatarChecksum, 32)
}

func TestEmployee_Deactivate(t *testing.T) {
	e := newTestEmployee(t)
	require.NoError(t, e.Deactivate(nil))

	err := e.EnsureActive()
	require.Error(t, err)
	assert.Equal(t, "Employee Jan Kowalski is inactive.", err.Error())

	_, err = NewRate(e, decimal.NewFromInt(100), uuid.New(), date("2024-01-01"), nil, nil)
	assert.Error(t, err)
}

func TestCheckRateOverlap(t *testing.T) {
	e := newTestEmployee(t)
	pln := uuid.New()

	mk := func(from string, to *time.Time) Rate {
		r, err := NewRate(e, decimal.NewFromInt(100), pln, date(from), to, nil)
		require.NoError(t, err)
		return *r
	}

	existing := []Rate{
		mk("2023-01-01", datePtr("2023-12-31")),
		mk("2024-01-01", nil),
	}

	t.Run("new window inside open ended rate", func(t *testing.T) {
		candidate := mk("2024-06-01", datePtr("2024-06-30"))
		err := CheckRateOverlap(&candidate, existing)
		require.Error(t, err)
		assert.Equal(t, OverlappingRateMessage, err.Error())
	})

	t.Run("window before all rates", func(t *testing.T) {
		candidate := mk("2022-01-01", datePtr("2022-12-31"))
		assert.NoError(t, CheckRateOverlap(&candidate, existing))
	})

	t.Run("single day window allowed", func(t *testing.T) {
		candidate := mk("2022-05-05", datePtr("2022-05-05"))
		assert.NoError(t, CheckRateOverlap(&candidate, existing))
	})

	t.Run("updating a rate ignores itself", func(t *testing.T) {
		self := existing[0]
		require.NoError(t, self.Update(decimal.NewFromInt(120), pln, date("2023-02-01"), datePtr("2023-12-31"), nil))
		assert.NoError(t, CheckRateOverlap(&self, existing))
	})

	t.Run("rates of other employees are ignored", func(t *testing.T) {
		candidate := mk("2024-06-01", nil)
		candidate.EmployeeID = uuid.New()
		assert.NoError(t, CheckRateOverlap(&candidate, existing))
	})
}

func TestRateAt(t *testing.T) {
	e := newTestEmployee(t)
	pln := uuid.New()
	old, err := NewRate(e, decimal.NewFromInt(80), pln, date("2023-01-01"), datePtr("2023-12-31"), nil)
	require.NoError(t, err)
	current, err := NewRate(e, decimal.NewFromInt(100), pln, date("2024-01-01"), nil, nil)
	require.NoError(t, err)

	rates := []Rate{*old, *current}
	assert.True(t, RateAt(rates, date("2023-06-01")).Rate.Equal(decimal.NewFromInt(80)))
	assert.True(t, RateAt(rates, date("2025-06-01")).Rate.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, RateAt(rates, date("2022-06-01")))
}

func TestNewDocument(t *testing.T) {
	e := newTestEmployee(t)
	docType := uuid.New()

	contract, err := NewDocument(e, DocumentDetails{
		Name: "Employment contract", SignDate: date("2024-01-01"), DocumentTypeID: docType,
	}, "documents/a.pdf", nil)
	require.NoError(t, err)

	t.Run("annex references contract", func(t *testing.T) {
		annex, err := NewDocument(e, DocumentDetails{
			Name: "Annex 1", SignDate: date("2024-06-01"), DocumentTypeID: docType, Reference: contract,
		}, "documents/b.pdf", nil)
		require.NoError(t, err)
		assert.Equal(t, contract.ID, *annex.ReferenceDocumentID)
	})

	t.Run("reference of another employee rejected", func(t *testing.T) {
		other := newTestEmployee(t)
		_, err := NewDocument(other, DocumentDetails{
			Name: "Annex", SignDate: date("2024-06-01"), DocumentTypeID: docType, Reference: contract,
		}, "documents/c.pdf", nil)
		assert.Error(t, err)
	})

	t.Run("file is required", func(t *testing.T) {
		_, err := NewDocument(e, DocumentDetails{Name: "x", SignDate: date("2024-01-01"), DocumentTypeID: docType}, "", nil)
		assert.Error(t, err)
	})
}

func TestReferrers(t *testing.T) {
	id := func() uuid.UUID { return uuid.New() }
	ref := func(u uuid.UUID) *uuid.UUID { return &u }

	a, b, c, d, x := id(), id(), id(), id(), id()
	docs := []Document{
		{ReferenceDocumentID: ref(b)},
		{ReferenceDocumentID: ref(a)},
		{ReferenceDocumentID: ref(a)},
		{},
		{ReferenceDocumentID: ref(c)},
	}
	docs[0].ID, docs[1].ID, docs[2].ID, docs[3].ID, docs[4].ID = c, b, d, a, x

	got := Referrers(a, docs)
	ids := make([]uuid.UUID, len(got))
	for i := range got {
		ids[i] = got[i].ID
	}
	assert.Equal(t, []uuid.UUID{b, d, c, x}, ids)

	assert.Empty(t, Referrers(x, docs))

	// a cycle does not loop forever and never returns the root
	docs[3].ReferenceDocumentID = ref(x)
	got = Referrers(a, docs)
	assert.Len(t, got, 4)
	for _, doc := range got {
		assert.NotEqual(t, a, doc.ID)
	}
}
