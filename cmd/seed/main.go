package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ailo-learn/backend/internal/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

// Seed loader. Reads the content workbook (chapters, topics, subtopics
// and microcontent as sheets) and the question bank JSON, validates
// them, and upserts everything into the database. Safe to re-run.

func main() {
	contentPath := flag.String("content", "", "path to the content workbook (.xlsx)")
	questionsPath := flag.String("questions", "", "path to the question bank (.json)")
	flag.Parse()

	if *contentPath == "" && *questionsPath == "" {
		log.Fatal("nothing to do: pass -content and/or -questions")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *contentPath != "" {
		if err := loadContent(db, *contentPath); err != nil {
			log.Fatalf("Failed to load content: %v", err)
		}
	}

	if *questionsPath != "" {
		if err := loadQuestions(db, *questionsPath); err != nil {
			log.Fatalf("Failed to load questions: %v", err)
		}
	}

	log.Println("Seed complete")
}

// ── Content workbook ────────────────────────────────────

func loadContent(db *sql.DB, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	loaded := map[string]int{}

	if err := loadChapters(db, f, loaded); err != nil {
		return err
	}
	if err := loadTopics(db, f, loaded); err != nil {
		return err
	}
	if err := loadSubtopics(db, f, loaded); err != nil {
		return err
	}
	if err := loadMicrocontent(db, f, loaded); err != nil {
		return err
	}

	// Refresh the denormalized card counts after everything is in.
	if _, err := db.Exec(
		`UPDATE subtopics SET microcontent_count =
		   (SELECT COUNT(*) FROM microcontent m WHERE m.subtopic_id = subtopics.subtopic_id)`,
	); err != nil {
		return fmt.Errorf("refresh card counts: %w", err)
	}

	log.Printf("[seed] loaded %d chapters, %d topics, %d subtopics, %d cards",
		loaded["chapters"], loaded["topics"], loaded["subtopics"], loaded["microcontent"])
	return nil
}

// sheetRows returns the data rows of a sheet, skipping the header row.
func sheetRows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// cell safely reads a column from a row that may be short.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func loadChapters(db *sql.DB, f *excelize.File, loaded map[string]int) error {
	rows, err := sheetRows(f, "Chapters")
	if err != nil {
		return err
	}
	for i, row := range rows {
		id, title := cell(row, 0), cell(row, 1)
		if id == "" || title == "" {
			log.Printf("[seed] skipping Chapters row %d: missing id or title", i+2)
			continue
		}
		order, _ := strconv.Atoi(cell(row, 4))
		locked := strings.EqualFold(cell(row, 5), "true")

		_, err := db.Exec(
			`INSERT INTO chapters (chapter_id, title, description, icon, display_order, locked)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (chapter_id)
			 DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description,
			               icon = EXCLUDED.icon, display_order = EXCLUDED.display_order,
			               locked = EXCLUDED.locked`,
			id, title, cell(row, 2), cell(row, 3), order, locked,
		)
		if err != nil {
			return fmt.Errorf("upsert chapter %s: %w", id, err)
		}
		loaded["chapters"]++
	}
	return nil
}

func loadTopics(db *sql.DB, f *excelize.File, loaded map[string]int) error {
	rows, err := sheetRows(f, "Topics")
	if err != nil {
		return err
	}
	for i, row := range rows {
		id, chapterID, title := cell(row, 0), cell(row, 1), cell(row, 2)
		if id == "" || chapterID == "" || title == "" {
			log.Printf("[seed] skipping Topics row %d: missing id, chapter or title", i+2)
			continue
		}
		order, _ := strconv.ParseFloat(cell(row, 6), 64)

		_, err := db.Exec(
			`INSERT INTO topics (topic_id, chapter_id, title, topic_title, description, content, display_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (topic_id)
			 DO UPDATE SET chapter_id = EXCLUDED.chapter_id, title = EXCLUDED.title,
			               topic_title = EXCLUDED.topic_title, description = EXCLUDED.description,
			               content = EXCLUDED.content, display_order = EXCLUDED.display_order`,
			id, chapterID, title, cell(row, 3), cell(row, 4), cell(row, 5), order,
		)
		if err != nil {
			return fmt.Errorf("upsert topic %s: %w", id, err)
		}
		loaded["topics"]++
	}
	return nil
}

func loadSubtopics(db *sql.DB, f *excelize.File, loaded map[string]int) error {
	rows, err := sheetRows(f, "Subtopics")
	if err != nil {
		return err
	}
	for i, row := range rows {
		id, topicID, chapterID, title := cell(row, 0), cell(row, 1), cell(row, 2), cell(row, 3)
		if id == "" || topicID == "" || title == "" {
			log.Printf("[seed] skipping Subtopics row %d: missing id, topic or title", i+2)
			continue
		}
		order, _ := strconv.Atoi(cell(row, 5))

		_, err := db.Exec(
			`INSERT INTO subtopics (subtopic_id, topic_id, chapter_id, title, subtopic_title, display_order)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (subtopic_id)
			 DO UPDATE SET topic_id = EXCLUDED.topic_id, chapter_id = EXCLUDED.chapter_id,
			               title = EXCLUDED.title, subtopic_title = EXCLUDED.subtopic_title,
			               display_order = EXCLUDED.display_order`,
			id, topicID, chapterID, title, cell(row, 4), order,
		)
		if err != nil {
			return fmt.Errorf("upsert subtopic %s: %w", id, err)
		}
		loaded["subtopics"]++
	}
	return nil
}

func loadMicrocontent(db *sql.DB, f *excelize.File, loaded map[string]int) error {
	rows, err := sheetRows(f, "Microcontent")
	if err != nil {
		return err
	}
	for i, row := range rows {
		id, subtopicID := cell(row, 0), cell(row, 1)
		if id == "" || subtopicID == "" {
			log.Printf("[seed] skipping Microcontent row %d: missing id or subtopic", i+2)
			continue
		}
		order, _ := strconv.Atoi(cell(row, 4))
		contentType := cell(row, 8)
		if contentType == "" {
			contentType = "text"
		}
		var relatedCode *string
		if code := cell(row, 9); code != "" {
			relatedCode = &code
		}

		_, err := db.Exec(
			`INSERT INTO microcontent (microcontent_id, subtopic_id, topic_id, chapter_id, display_order,
			                           story_explanation, analogy_explanation, core_text, content_type, related_code)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (microcontent_id)
			 DO UPDATE SET subtopic_id = EXCLUDED.subtopic_id, topic_id = EXCLUDED.topic_id,
			               chapter_id = EXCLUDED.chapter_id, display_order = EXCLUDED.display_order,
			               story_explanation = EXCLUDED.story_explanation,
			               analogy_explanation = EXCLUDED.analogy_explanation,
			               core_text = EXCLUDED.core_text, content_type = EXCLUDED.content_type,
			               related_code = EXCLUDED.related_code`,
			id, subtopicID, cell(row, 2), cell(row, 3), order,
			cell(row, 5), cell(row, 6), cell(row, 7), contentType, relatedCode,
		)
		if err != nil {
			return fmt.Errorf("upsert microcontent %s: %w", id, err)
		}
		loaded["microcontent"]++
	}
	return nil
}

// ── Question bank ───────────────────────────────────────

type seedQuestion struct {
	QuestionID    string   `json:"question_id"`
	TopicID       *string  `json:"topic_id"`
	SubtopicID    *string  `json:"subtopic_id"`
	ChapterID     *string  `json:"chapter_id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

func loadQuestions(db *sql.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read question bank: %w", err)
	}

	var questions []seedQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("parse question bank: %w", err)
	}

	inserted, skipped, repaired := 0, 0, 0
	for i, q := range questions {
		if strings.TrimSpace(q.QuestionText) == "" || len(q.Options) < 2 || strings.TrimSpace(q.CorrectAnswer) == "" {
			log.Printf("[seed] skipping question %d: missing text, options or answer", i)
			skipped++
			continue
		}

		// Repair answer keys that drifted out of the option list. The
		// correct answer must always be selectable in the client.
		if !contains(q.Options, q.CorrectAnswer) {
			q.Options = append(q.Options, q.CorrectAnswer)
			log.Printf("[seed] question %d: correct answer missing from options, appended", i)
			repaired++
		}

		if q.QuestionID == "" {
			q.QuestionID = uuid.NewString()
		}
		if q.Difficulty == "" {
			q.Difficulty = "medium"
		}

		_, err := db.Exec(
			`INSERT INTO quiz_questions (question_id, topic_id, subtopic_id, chapter_id, question_text,
			                             options, correct_answer, explanation, difficulty, topic_label)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (question_id)
			 DO UPDATE SET topic_id = EXCLUDED.topic_id, subtopic_id = EXCLUDED.subtopic_id,
			               chapter_id = EXCLUDED.chapter_id, question_text = EXCLUDED.question_text,
			               options = EXCLUDED.options, correct_answer = EXCLUDED.correct_answer,
			               explanation = EXCLUDED.explanation, difficulty = EXCLUDED.difficulty,
			               topic_label = EXCLUDED.topic_label`,
			q.QuestionID, q.TopicID, q.SubtopicID, q.ChapterID, q.QuestionText,
			pq.Array(q.Options), q.CorrectAnswer, q.Explanation, q.Difficulty, q.Topic,
		)
		if err != nil {
			return fmt.Errorf("upsert question %s: %w", q.QuestionID, err)
		}
		inserted++
	}

	log.Printf("[seed] loaded %d questions (%d skipped, %d repaired)", inserted, skipped, repaired)
	return nil
}

func contains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
