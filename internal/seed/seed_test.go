package seed

import (
	"strings"
	"testing"
)

const sampleFixture = `
users:
  - email: aspirant@prepmitra.dev
    first_name: Asha
    last_name: Rao
profiles:
  - user_email: aspirant@prepmitra.dev
    target_exam: UPSC
    weak_subjects: [Economy]
articles:
  - title: RBI revises repo rate
    content: The central bank adjusted its policy rate.
    summary: Repo rate change.
    category: Economy
    source: pib
    published_date: 2026-08-15T00:00:00Z
    tags: [rbi, monetary-policy]
    importance: high
    exam_relevance: [UPSC, SSC]
    read_time: 4
`

func TestParse(t *testing.T) {
	file, err := Parse([]byte(sampleFixture))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(file.Users) != 1 || len(file.Profiles) != 1 || len(file.Articles) != 1 {
		t.Fatalf("unexpected counts: %d users, %d profiles, %d articles", len(file.Users), len(file.Profiles), len(file.Articles))
	}
	if file.Profiles[0].TargetExam != "UPSC" {
		t.Fatalf("unexpected target exam %q", file.Profiles[0].TargetExam)
	}
	a := file.Articles[0]
	if a.Category != "Economy" || a.ReadTime != 4 {
		t.Fatalf("article fields not parsed: %+v", a)
	}
	if len(a.ExamRelevance) != 2 || a.ExamRelevance[0] != "UPSC" {
		t.Fatalf("exam relevance not parsed: %v", a.ExamRelevance)
	}
	if a.PublishedDate.IsZero() {
		t.Fatalf("published date not parsed")
	}
}

func TestParseValidation(t *testing.T) {
	cases := []struct {
		name    string
		fixture string
		wantErr string
	}{
		{
			name:    "user without email",
			fixture: "users:\n  - first_name: X\n",
			wantErr: "email required",
		},
		{
			name:    "profile without target exam",
			fixture: "profiles:\n  - user_email: a@b.c\n",
			wantErr: "target_exam required",
		},
		{
			name:    "article without title",
			fixture: "articles:\n  - category: Economy\n",
			wantErr: "title required",
		},
		{
			name:    "malformed yaml",
			fixture: "users: [\n",
			wantErr: "parsing seed file",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.fixture))
			if err == nil || !strings.Contains(err.Error(), c.wantErr) {
				t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
			}
		})
	}
}

func TestMarshalList(t *testing.T) {
	if got := string(marshalList(nil)); got != "[]" {
		t.Fatalf("nil list should marshal to empty array, got %q", got)
	}
	if got := string(marshalList([]string{"UPSC"})); got != `["UPSC"]` {
		t.Fatalf("unexpected marshal output %q", got)
	}
}
