// Package corpus loads a labeled two-class text corpus from the filesystem.
// Each class is a directory of plain-text post files; a file's label is
// determined solely by the directory it was listed from.
package corpus

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Labels assigned to the two classes.
const (
	LabelDepression    = 0
	LabelNonDepression = 1
)

// Record is one loaded post file.
type Record struct {
	Name  string // base file name
	Path  string // full path the text was read from
	Text  string // normalized post text, blank lines removed
	Label int    // LabelDepression or LabelNonDepression
}

// Dataset is an ordered collection of records with a parallel label vector.
// len(Records) == len(Labels) and Labels[i] == Records[i].Label always hold.
type Dataset struct {
	Records []Record
	Labels  []int
}

// Loader reads a two-class corpus. The zero value uses DecodeEscapes as the
// text normalizer.
type Loader struct {
	// Normalize converts the raw bytes of one line into a UTF-8 string.
	// If nil, DecodeEscapes is used.
	Normalize Normalizer
}

// Load lists both class directories, shuffles the combined file list so that
// iteration order does not correlate with label, reads every file and returns
// the assembled dataset. Any unreadable directory or file is a fatal load
// error; there is no partial loading.
//
// If rnd is nil the shuffle uses the shared global source.
func (l *Loader) Load(depDir, nonDepDir string, rnd *rand.Rand) (*Dataset, error) {
	type entry struct {
		name  string
		dir   string
		label int
	}

	var entries []entry
	for _, src := range []struct {
		dir   string
		label int
	}{
		{depDir, LabelDepression},
		{nonDepDir, LabelNonDepression},
	} {
		names, err := listFiles(src.dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			entries = append(entries, entry{name: name, dir: src.dir, label: src.label})
		}
	}

	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})

	normalize := l.Normalize
	if normalize == nil {
		normalize = DecodeEscapes
	}

	ds := &Dataset{
		Records: make([]Record, 0, len(entries)),
		Labels:  make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		path := filepath.Join(e.dir, e.name)
		text, err := readPost(path, normalize)
		if err != nil {
			return nil, fmt.Errorf("corpus: reading %s: %w", path, err)
		}
		ds.Records = append(ds.Records, Record{
			Name:  e.name,
			Path:  path,
			Text:  text,
			Label: e.label,
		})
		ds.Labels = append(ds.Labels, e.label)
	}
	return ds, nil
}

// Load loads a corpus with the default normalizer. See Loader.Load.
func Load(depDir, nonDepDir string, rnd *rand.Rand) (*Dataset, error) {
	var l Loader
	return l.Load(depDir, nonDepDir, rnd)
}

// Texts returns the record texts in dataset order.
func (d *Dataset) Texts() []string {
	texts := make([]string, len(d.Records))
	for i, r := range d.Records {
		texts[i] = r.Text
	}
	return texts
}

// Counts returns the number of records in each class.
func (d *Dataset) Counts() (dep, nonDep int) {
	for _, label := range d.Labels {
		if label == LabelDepression {
			dep++
		} else {
			nonDep++
		}
	}
	return dep, nonDep
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.Records) }

func listFiles(dir string) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: listing %s: %w", dir, err)
	}
	var names []string
	for _, de := range des {
		if de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

// readPost reads a post file line by line, skipping blank lines, normalizing
// each kept line and joining them with a single separating space. The joined
// text keeps a trailing space when non-empty, matching the format the
// downstream tokenizer was tuned against.
func readPost(path string, normalize Normalizer) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		decoded, err := normalize(line)
		if err != nil {
			return "", err
		}
		sb.WriteString(strings.TrimSpace(decoded))
		sb.WriteByte(' ')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
