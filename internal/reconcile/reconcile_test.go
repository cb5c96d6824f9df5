package reconcile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestSplitParagraphs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \n\n \n\n\t", []string{}},
		{"single", "  one  ", []string{"one"}},
		{"two", "one\n\ntwo", []string{"one", "two"}},
		{"triple newline", "one\n\n\ntwo", []string{"one", "two"}},
		{"single newline kept", "line a\nline b\n\nnext", []string{"line a\nline b", "next"}},
		{"crlf", "one\r\n\r\ntwo", []string{"one", "two"}},
		{"leading and trailing breaks", "\n\none\n\n", []string{"one"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitParagraphs(tc.raw))
		})
	}
}

func TestReconcile_KeepsAttributionAndAssignsCurrent(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "note a", URLID: ptr("url1")}}
	got := Reconcile(existing, "note a\n\nnote b", ptr("url2"))

	require.Len(t, got, 2)
	assert.Equal(t, "note a", got[0].Text)
	require.NotNil(t, got[0].URLID)
	assert.Equal(t, "url1", *got[0].URLID)
	assert.Equal(t, "note b", got[1].Text)
	require.NotNil(t, got[1].URLID)
	assert.Equal(t, "url2", *got[1].URLID)
}

func TestReconcile_MatchIgnoresSurroundingWhitespace(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "  note a \n", URLID: ptr("url1")}}
	got := Reconcile(existing, "\n\n   note a   ", ptr("url2"))
	require.Len(t, got, 1)
	assert.Equal(t, "url1", *got[0].URLID)
}

func TestReconcile_EditedNoteLosesAttribution(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "note a", URLID: ptr("url1")}}
	got := Reconcile(existing, "note  a", ptr("url2"))
	require.Len(t, got, 1)
	assert.Equal(t, "url2", *got[0].URLID)
}

func TestReconcile_NoCurrentURL(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "kept", URLID: ptr("url1")}}
	got := Reconcile(existing, "kept\n\nfresh", nil)
	require.Len(t, got, 2)
	assert.Equal(t, "url1", *got[0].URLID)
	assert.Nil(t, got[1].URLID)
}

func TestReconcile_UnattributedNoteStaysUnattributed(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "plain", URLID: nil}}
	got := Reconcile(existing, "plain", ptr("url2"))
	require.Len(t, got, 1)
	assert.Nil(t, got[0].URLID, "an exact match keeps its (empty) attribution")
}

func TestReconcile_DuplicateExistingTextLastWins(t *testing.T) {
	existing := []domain.NoteDraft{
		{Text: "dup", URLID: ptr("first")},
		{Text: " dup ", URLID: ptr("second")},
	}
	got := Reconcile(existing, "dup\n\ndup", nil)
	require.Len(t, got, 2)
	assert.Equal(t, "second", *got[0].URLID)
	assert.Equal(t, "second", *got[1].URLID)
}

func TestReconcile_EmptyBlobClearsNotes(t *testing.T) {
	existing := []domain.NoteDraft{{Text: "a", URLID: ptr("url1")}}
	assert.Empty(t, Reconcile(existing, "  \n\n ", ptr("url2")))
}

func TestReconcile_DoesNotAliasInputIDs(t *testing.T) {
	id := "url1"
	existing := []domain.NoteDraft{{Text: "a", URLID: &id}}
	got := Reconcile(existing, "a", nil)
	id = "mutated"
	assert.Equal(t, "url1", *got[0].URLID)
}

func TestReconcile_CountMatchesParagraphs(t *testing.T) {
	blobs := []string{
		"",
		"one",
		"one\n\ntwo\n\n\n\nthree",
		"\n\n\n",
		"a\nb\n\n  \n\nc",
		strings.Repeat("x\n\n", 20),
	}
	for _, raw := range blobs {
		got := Reconcile(nil, raw, ptr("u"))
		assert.Len(t, got, len(SplitParagraphs(raw)), "blob %q", raw)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	existing := []domain.NoteDraft{
		{Text: "alpha", URLID: ptr("u1")},
		{Text: "beta", URLID: nil},
		{Text: "gamma", URLID: ptr("u3")},
	}
	for i, raw := range []string{
		"alpha\n\nbeta\n\ndelta",
		"gamma\n\n\nalpha\n\nnew one\n\nnew two",
		"",
	} {
		current := ptr(fmt.Sprintf("cur%d", i))
		first := Reconcile(existing, raw, current)
		second := Reconcile(first, raw, current)
		assert.Equal(t, first, second, "blob %q", raw)
	}
}
