package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectsForFirstYearIgnoresBranch(t *testing.T) {
	branches := []string{"cse", "it", "aids", "electronics", "electrical", "mechanical", "civil", "unknown", ""}

	for _, sem := range []string{"1", "2"} {
		base := SubjectsFor("cse", sem)
		require.NotEmpty(t, base)
		for _, branch := range branches {
			assert.Equal(t, base, SubjectsFor(branch, sem), "semester %s must be branch-independent (branch %q)", sem, branch)
		}
	}
}

func TestSubjectsForUnknownBranch(t *testing.T) {
	for _, sem := range []string{"3", "4", "5", "6", "7", "8"} {
		assert.Empty(t, SubjectsFor("aeronautics", sem))
		assert.Empty(t, SubjectsFor("", sem))
	}
}

func TestSubjectsForUnknownSemester(t *testing.T) {
	assert.Empty(t, SubjectsFor("cse", "9"))
	assert.Empty(t, SubjectsFor("cse", "0"))
	assert.Empty(t, SubjectsFor("cse", ""))
}

func TestSubjectsForBranchCaseInsensitive(t *testing.T) {
	assert.Equal(t, SubjectsFor("cse", "3"), SubjectsFor("CSE", "3"))
	assert.Equal(t, SubjectsFor("mechanical", "5"), SubjectsFor("Mechanical", "5"))
}

func TestSubjectsForEveryBranchSemesterNonEmpty(t *testing.T) {
	for _, branch := range Branches() {
		for _, sem := range Semesters() {
			assert.NotEmpty(t, SubjectsFor(branch.Code, sem.Code),
				"branch %s semester %s has no subjects", branch.Code, sem.Code)
		}
	}
}

func TestSubjectsForKnownEntries(t *testing.T) {
	subjects := SubjectsFor("cse", "3")
	require.Len(t, subjects, 5)
	assert.Equal(t, Subject{"applied_mathematics_iii", "Applied Mathematics-III"}, subjects[0])

	codes := make([]string, len(subjects))
	for i, s := range subjects {
		codes[i] = s.Code
	}
	assert.Contains(t, codes, "data_structures")
}

func TestValidSelection(t *testing.T) {
	assert.True(t, ValidSelection("cse", "3", []string{"applied_mathematics_iii", "data_structures"}))
	assert.True(t, ValidSelection("CSE", "3", []string{"data_structures"}))

	assert.False(t, ValidSelection("cse", "3", nil), "empty selection")
	assert.False(t, ValidSelection("cse", "3", []string{"compilers"}), "subject from another semester")
	assert.False(t, ValidSelection("cse", "3", []string{"data_structures", "not_a_subject"}))
	assert.False(t, ValidSelection("aeronautics", "3", []string{"data_structures"}), "unknown branch")
}

func TestLabels(t *testing.T) {
	labels := Labels("cse", "3", []string{"data_structures", "bogus", "digital_electronics"})
	assert.Equal(t, []string{"Data Structures", "Digital Electronics"}, labels)
}
