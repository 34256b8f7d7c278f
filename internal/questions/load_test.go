package questions

import (
	"strings"
	"testing"
	"testing/fstest"
)

const oneQuestionSet = `questions:
  - id: %s
    text: Example?
    type: yes-no
    category: %s
    moduleId: %s-m
    applicableDisciplines: []
    universalQuestion: true
    weight: 1
    options:
      - { value: "yes", score: 5, text: "Yes" }
      - { value: "no", score: 1, text: "No" }
`

func testCatalogFS(version string) fstest.MapFS {
	fsys := fstest.MapFS{}
	var manifest strings.Builder
	manifest.WriteString("version: " + version + "\nsets:\n")
	for _, c := range AllCategories() {
		file := string(c) + ".yaml"
		manifest.WriteString("  - category: " + string(c) + "\n    file: " + file + "\n")
		body := strings.NewReplacer("%s-m", string(c)+"-m", "id: %s", "id: q-"+string(c), "category: %s", "category: "+string(c)).Replace(oneQuestionSet)
		fsys[file] = &fstest.MapFile{Data: []byte(body)}
	}
	fsys[ManifestFile] = &fstest.MapFile{Data: []byte(manifest.String())}
	return fsys
}

func TestLoad(t *testing.T) {
	c, err := Load(testCatalogFS("v2.0.1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 10 {
		t.Errorf("got %d questions, want 10", c.Len())
	}
	if c.Version() != "v2.0.1" {
		t.Errorf("got version %q, want v2.0.1", c.Version())
	}
	if got := c.AllQuestions()[0].ID; got != "q-financial" {
		t.Errorf("first question: got %q, want q-financial", got)
	}
}

func TestLoad_RejectsBadVersion(t *testing.T) {
	_, err := Load(testCatalogFS("1.0"))
	if err == nil {
		t.Fatal("expected error for non-semver version, got nil")
	}
	if !strings.Contains(err.Error(), "semantic version") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_RejectsReorderedSets(t *testing.T) {
	fsys := testCatalogFS("v1.0.0")
	fsys[ManifestFile] = &fstest.MapFile{Data: []byte("version: v1.0.0\nsets:\n  - category: operations\n    file: operations.yaml\n")}
	if _, err := Load(fsys); err == nil {
		t.Fatal("expected error for incomplete manifest, got nil")
	}
}

func TestLoad_MissingSetFile(t *testing.T) {
	fsys := testCatalogFS("v1.0.0")
	delete(fsys, "geography.yaml")
	_, err := Load(fsys)
	if err == nil {
		t.Fatal("expected error for missing set file, got nil")
	}
	if !strings.Contains(err.Error(), "geography") {
		t.Errorf("error should name the set, got: %v", err)
	}
}

func TestDecodeSet_StringWeightNamesField(t *testing.T) {
	data := []byte(`questions:
  - id: bad-weight
    text: Example?
    type: number
    category: financial
    moduleId: fin-1
    applicableDisciplines: []
    universalQuestion: true
    weight: heavy
`)
	_, err := DecodeSet("financial.yaml", CategoryFinancial, data)
	if err == nil {
		t.Fatal("expected error for string weight, got nil")
	}
	for _, want := range []string{"financial.yaml[0]", "bad-weight", "/weight"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should contain %q, got: %v", want, err)
		}
	}
}

func TestDecodeSet_UnknownFieldRejected(t *testing.T) {
	data := []byte(`questions:
  - id: extra
    text: Example?
    type: text
    category: financial
    moduleId: fin-1
    applicableDisciplines: []
    universalQuestion: true
    weight: 0
    colour: blue
`)
	if _, err := DecodeSet("financial.yaml", CategoryFinancial, data); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestDecodeSet_UnquotedInterpretationKeys(t *testing.T) {
	data := []byte(`questions:
  - id: keys
    text: Example?
    type: scale
    category: financial
    moduleId: fin-1
    applicableDisciplines: [physiotherapy]
    universalQuestion: false
    weight: 1
    options:
      - { value: "1", score: 1, text: "Low" }
    scoreInterpretation:
      1:
        interpretation: Low.
        actionPrompts: [Fix it]
        priority: high
`)
	set, err := DecodeSet("financial.yaml", CategoryFinancial, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	interp, ok := set.Questions[0].ScoreInterpretation["1"]
	if !ok {
		t.Fatal("expected interpretation keyed \"1\"")
	}
	if interp.Priority != PriorityHigh {
		t.Errorf("got priority %q, want high", interp.Priority)
	}
}
