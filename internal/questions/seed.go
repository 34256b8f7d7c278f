package questions

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed data
var dataFS embed.FS

// c is the package-level catalog singleton, built from the embedded sets.
var c *Catalog

func init() {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(fmt.Sprintf("question catalog: %v", err))
	}
	cat, err := Load(sub)
	if err != nil {
		panic(fmt.Sprintf("question catalog: %v", err))
	}
	c = cat
}

// Default returns the embedded catalog.
func Default() *Catalog { return c }

// Version returns the embedded catalog's semantic version.
func Version() string { return c.Version() }

// AllQuestions returns every question in the embedded catalog.
func AllQuestions() []Question { return c.AllQuestions() }

// GetQuestion returns a question by ID, or error if not found.
func GetQuestion(id string) (Question, error) { return c.GetQuestion(id) }

// ByCategory returns all questions in a category.
func ByCategory(category Category) []Question { return c.ByCategory(category) }

// ByModule returns all questions in a module.
func ByModule(moduleID string) []Question { return c.ByModule(moduleID) }

// ByDiscipline returns all questions applicable to a discipline.
func ByDiscipline(d Discipline) []Question { return c.ByDiscipline(d) }

// ByType returns all questions of a type.
func ByType(t QuestionType) []Question { return c.ByType(t) }

// Modules returns the module IDs of the embedded catalog.
func Modules() []string { return c.Modules() }
