package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/studyhub/internal/tutoring"
)

// GenerateQuestionsCommand runs question generation for one subject outside
// the server, e.g. to backfill a subject after importing a resume.
type GenerateQuestionsCommand struct {
	base
	SubjectID uint
	UserID    uint
	Count     int
	ItemCount int
}

func NewGenerateQuestionsCommand() *GenerateQuestionsCommand {
	return &GenerateQuestionsCommand{base: newBase()}
}

func (cmd *GenerateQuestionsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("generate-questions", flag.ExitOnError)

	fs.UintVar(&cmd.SubjectID, "subject", 0, "Subject ID (required)")
	fs.UintVar(&cmd.UserID, "user", 0, "ID of the user owning the subject (required)")
	fs.IntVar(&cmd.Count, "count", tutoring.DefaultQuestionCount, "Number of questions to generate")
	fs.IntVar(&cmd.ItemCount, "items", tutoring.DefaultItemCount, "Answer options per question")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.DatabasePath, "Path to the SQLite database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s generate-questions [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate multiple-choice questions for a subject with Gemini.\n")
		fmt.Fprintf(os.Stderr, "GEMINI_KEY must be set.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s generate-questions -subject 12 -user 3 -count 10\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.SubjectID == 0 || cmd.UserID == 0 {
		fs.Usage()
		return fmt.Errorf("subject and user are required")
	}
	return cmd.request().Validate()
}

func (cmd *GenerateQuestionsCommand) request() tutoring.Request {
	return tutoring.Request{
		SubjectID: cmd.SubjectID,
		UserID:    cmd.UserID,
		Count:     cmd.Count,
		ItemCount: cmd.ItemCount,
	}
}

func (cmd *GenerateQuestionsCommand) Run() error {
	app, err := cmd.build()
	if err != nil {
		return err
	}
	defer app.Close()

	r := app.QuestionGenerator.Generate(context.Background(), cmd.request())
	if !r.Ok() {
		return fmt.Errorf("generate questions: %s", r.Message)
	}

	fmt.Fprintln(cmd.out, r.Message)
	for i, q := range r.Value.Questions {
		fmt.Fprintf(cmd.out, "%2d. %s\n", i+1, q.Text)
	}
	return nil
}
