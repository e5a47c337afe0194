package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Splits lists the dataset partitions.
var Splits = []string{"train", "val", "test"}

// ValidSplit reports whether s names a known dataset partition.
func ValidSplit(s string) bool {
	for _, known := range Splits {
		if s == known {
			return true
		}
	}
	return false
}

// Loader reads failing learner attempts from a dataset directory.
//
// Layout under root:
//
//	{split}/{problem_id}/problem.txt
//	{split}/{problem_id}/hints.txt
//	{split}/{problem_id}/attempts/{attempt_id}.py
//	processed/failed_tests/{split}/{problem_id}/{attempt_id}.json
type Loader struct {
	root string
}

// NewLoader creates a loader rooted at the dataset directory.
func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Records returns every failing attempt in the split, ordered by numeric
// problem ID then attempt ID. Attempts whose failed-test list is empty
// are skipped: a passing attempt has nothing to tutor. A missing split
// directory surfaces as fs.ErrNotExist.
func (l *Loader) Records(split string) ([]Record, error) {
	failedDir := filepath.Join(l.root, "processed", "failed_tests", split)
	pids, err := numericDirs(failedDir)
	if err != nil {
		return nil, err
	}

	var records []Record
	for _, pid := range pids {
		pidDir := filepath.Join(failedDir, strconv.Itoa(pid))
		attempts, err := numericJSONFiles(pidDir)
		if err != nil {
			return nil, err
		}

		problem, humanHints, err := l.readProblem(split, pid)
		if err != nil {
			return nil, err
		}

		for _, attemptID := range attempts {
			tests, err := readFailedTests(filepath.Join(pidDir, strconv.Itoa(attemptID)+".json"))
			if err != nil {
				return nil, err
			}
			if len(tests) == 0 {
				continue
			}

			code, err := os.ReadFile(filepath.Join(l.root, split, strconv.Itoa(pid), "attempts", strconv.Itoa(attemptID)+".py"))
			if err != nil {
				return nil, fmt.Errorf("attempt code for %s/%d/%d: %w", split, pid, attemptID, err)
			}

			records = append(records, Record{
				Split:       split,
				ProblemID:   pid,
				AttemptID:   attemptID,
				Problem:     problem,
				LearnerCode: string(code),
				HumanHint:   hintForAttempt(humanHints, attemptID),
				FailedTests: tests,
			})
		}
	}
	return records, nil
}

// readProblem loads the problem statement and the per-attempt human
// hints. Both problem.txt and the older prompt.txt spelling are
// accepted; a missing hints file just means no human hints.
func (l *Loader) readProblem(split string, pid int) (string, []string, error) {
	dir := filepath.Join(l.root, split, strconv.Itoa(pid))

	problem, err := readFirst(filepath.Join(dir, "problem.txt"), filepath.Join(dir, "prompt.txt"))
	if err != nil {
		return "", nil, fmt.Errorf("problem text for %s/%d: %w", split, pid, err)
	}

	var hints []string
	raw, err := os.ReadFile(filepath.Join(dir, "hints.txt"))
	if err == nil {
		hints = strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", nil, err
	}

	return strings.TrimSpace(problem), hints, nil
}

// hintForAttempt maps attempt N to line N-1 of the hints file.
func hintForAttempt(hints []string, attemptID int) string {
	i := attemptID - 1
	if i < 0 || i >= len(hints) {
		return ""
	}
	return strings.TrimSpace(hints[i])
}

func readFirst(paths ...string) (string, error) {
	var lastErr error
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err == nil {
			return string(b), nil
		}
		lastErr = err
	}
	return "", lastErr
}

func readFailedTests(path string) ([]FailedTest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, nil
	}
	var tests []FailedTest
	if err := json.Unmarshal([]byte(trimmed), &tests); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tests, nil
}

func numericDirs(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func numericJSONFiles(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
