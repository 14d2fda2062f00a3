package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"quizadmin/internal/gateway"
	"quizadmin/internal/model"
	"quizadmin/internal/validation"
)

// SeedFile is the JSON document read by `quizadmin seed`.
type SeedFile struct {
	Nodes []SeedNode `json:"nodes"`
}

// SeedNode is a node with its children and the assessments attached to it.
type SeedNode struct {
	Name        string           `json:"name"`
	Type        model.NodeType   `json:"type"`
	Children    []SeedNode       `json:"children"`
	Assessments []SeedAssessment `json:"assessments"`
}

type SeedAssessment struct {
	Title     string               `json:"title"`
	Type      model.AssessmentType `json:"type"`
	Questions []SeedQuestion       `json:"questions"`
}

type SeedQuestion struct {
	Text    string              `json:"text"`
	Answers []model.AnswerInput `json:"answers"`
}

// SeedResult counts what was created.
type SeedResult struct {
	Nodes       int `json:"nodes"`
	Assessments int `json:"assessments"`
	Questions   int `json:"questions"`
	Answers     int `json:"answers"`
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Create a node tree with assessments from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, a *app, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			var file SeedFile
			if err := json.Unmarshal(raw, &file); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}

			log.Printf("Seeding %d root nodes...", len(file.Nodes))
			res, err := newSeeder(a.gw).run(cmd.Context(), file)
			log.Printf("Seed finished: %d nodes, %d assessments, %d questions, %d answers",
				res.Nodes, res.Assessments, res.Questions, res.Answers)
			if err != nil {
				return err
			}
			return a.print(res)
		}),
	}
}

type seeder struct {
	gw       *gateway.Gateways
	validate *validator.Validate
	res      SeedResult
}

func newSeeder(gw *gateway.Gateways) *seeder {
	return &seeder{gw: gw, validate: validation.New()}
}

// run creates records depth first. It stops at the first failure and
// reports what was already created.
func (s *seeder) run(ctx context.Context, file SeedFile) (SeedResult, error) {
	for _, n := range file.Nodes {
		if err := s.node(ctx, n, nil); err != nil {
			return s.res, err
		}
	}
	return s.res, nil
}

func (s *seeder) node(ctx context.Context, n SeedNode, parentID *string) error {
	in := model.NodeInput{Name: n.Name, Type: n.Type, ParentID: parentID}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("node %q: %w", n.Name, err)
	}
	created, err := s.gw.Nodes.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("create node %q: %w", n.Name, err)
	}
	s.res.Nodes++

	for _, as := range n.Assessments {
		if err := s.assessment(ctx, as, created.ID); err != nil {
			return err
		}
	}
	id := created.ID
	for _, child := range n.Children {
		if err := s.node(ctx, child, &id); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) assessment(ctx context.Context, as SeedAssessment, nodeID string) error {
	in := model.AssessmentInput{Title: as.Title, Type: as.Type, NodeID: nodeID}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("assessment %q: %w", as.Title, err)
	}
	created, err := s.gw.Assessments.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("create assessment %q: %w", as.Title, err)
	}
	s.res.Assessments++

	for _, q := range as.Questions {
		qin := model.QuestionInput{Text: q.Text, AssessmentID: created.ID}
		if err := s.validate.Struct(qin); err != nil {
			return fmt.Errorf("question %q: %w", q.Text, err)
		}
		question, err := s.gw.Questions.Create(ctx, qin)
		if err != nil {
			return fmt.Errorf("create question %q: %w", q.Text, err)
		}
		s.res.Questions++

		for _, ans := range q.Answers {
			ans.QuestionID = question.ID
			if err := s.validate.Struct(ans); err != nil {
				return fmt.Errorf("answer %q: %w", ans.Text, err)
			}
			if _, err := s.gw.Answers.Create(ctx, ans); err != nil {
				return fmt.Errorf("create answer %q: %w", ans.Text, err)
			}
			s.res.Answers++
		}
	}
	return nil
}
