package diag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/hcl/diag"
	"github.com/ardnew/hcl/token"
)

func TestNewJoinsDetailWithSpaces(t *testing.T) {
	d := diag.New(diag.KindType, token.Range{}, "bad thing", "extra", "context")
	require.Equal(t, "extra context", d.Detail)
	require.Equal(t, diag.SeverityError, d.Severity)
}

func TestWarningIsNotAnError(t *testing.T) {
	d := diag.Warning(diag.KindSemantic, token.Range{}, "heads up")
	diags := diag.Diagnostics{d}

	require.False(t, diags.HasErrors())
	require.Nil(t, diags.AsError())
}

func TestDiagnosticErrorIncludesSubjectWhenValid(t *testing.T) {
	noSubject := diag.New(diag.KindParse, token.Range{}, "oops")
	require.NotContains(t, noSubject.Error(), " (at ")

	withSubject := diag.New(diag.KindParse, token.Range{
		Start: token.Pos{Line: 1, Column: 1},
		End:   token.Pos{Line: 1, Column: 2},
	}, "oops")
	require.Contains(t, withSubject.Error(), " (at ")
}

func TestDiagnosticsErrorSummarizesMultiple(t *testing.T) {
	diags := diag.Diagnostics{
		diag.New(diag.KindType, token.Range{}, "first"),
		diag.New(diag.KindRange, token.Range{}, "second"),
	}

	require.Contains(t, diags.Error(), "first")
	require.Contains(t, diags.Error(), "and 1 more")
}

func TestDiagnosticsErrsFiltersWarnings(t *testing.T) {
	diags := diag.Diagnostics{
		diag.Warning(diag.KindSemantic, token.Range{}, "warn"),
		diag.New(diag.KindSemantic, token.Range{}, "err"),
	}

	errs := diags.Errs()
	require.Len(t, errs, 1)
	require.Equal(t, "err", errs[0].Summary)
}

func TestDiagnosticsAppendAccumulates(t *testing.T) {
	var diags diag.Diagnostics

	diags = diags.Append(diag.New(diag.KindType, token.Range{}, "one"))
	diags = diags.Append(diag.New(diag.KindType, token.Range{}, "two"))

	require.Len(t, diags, 2)
}
