package sequencing

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/jobseq/core/model"
)

// JobFile is the document shape of yaml, json and toml job files.
type JobFile struct {
	Jobs []model.Job `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// LoadJobs reads jobs from a yaml, json, toml or csv file.
func LoadJobs(path string) ([]model.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	jobs, err := DecodeJobs(f, format)
	if err != nil {
		return nil, fmt.Errorf("jobs %s: %w", path, err)
	}
	return jobs, nil
}

// DecodeJobs reads jobs from r in the given format (yaml, yml, json, toml or csv).
// Every job must carry an id.
func DecodeJobs(r io.Reader, format string) ([]model.Job, error) {
	var jobs []model.Job
	switch strings.ToLower(format) {
	case "yaml", "yml":
		var doc JobFile
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		jobs = doc.Jobs
	case "json":
		var doc JobFile
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		jobs = doc.Jobs
	case "toml":
		var doc JobFile
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, err
		}
		jobs = doc.Jobs
	case "csv":
		var err error
		if jobs, err = decodeCSV(r); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	for i, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", i, err)
		}
	}
	return jobs, nil
}

// decodeCSV expects an id,deadline,profit header followed by one job per row.
func decodeCSV(r io.Reader) ([]model.Job, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"id", "deadline", "profit"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("csv: missing column %q", col)
		}
	}
	var jobs []model.Job
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		deadline, err := strconv.Atoi(rec[idx["deadline"]])
		if err != nil {
			return nil, fmt.Errorf("csv: deadline: %w", err)
		}
		profit, err := strconv.Atoi(rec[idx["profit"]])
		if err != nil {
			return nil, fmt.Errorf("csv: profit: %w", err)
		}
		jobs = append(jobs, model.Job{ID: model.JobID(rec[idx["id"]]), Deadline: deadline, Profit: profit})
	}
	return jobs, nil
}
