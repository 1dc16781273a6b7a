package corpus

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCorpus lays out a two-directory corpus under a temp root and returns
// the two directory paths.
func writeCorpus(t *testing.T, dep, nonDep map[string]string) (string, string) {
	t.Helper()
	root := t.TempDir()
	depDir := filepath.Join(root, "depression")
	nonDepDir := filepath.Join(root, "non_depression")
	for dir, files := range map[string]map[string]string{depDir: dep, nonDepDir: nonDep} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		}
	}
	return depDir, nonDepDir
}

func TestLoadCountsAndLabels(t *testing.T) {
	depDir, nonDepDir := writeCorpus(t,
		map[string]string{
			"a.txt": "i feel hopeless\n",
			"b.txt": "another sad post\n",
			"c.txt": "cannot sleep\n",
		},
		map[string]string{
			"d.txt": "great hike today\n",
			"e.txt": "made pancakes\n",
		},
	)

	ds, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 5, ds.Len())
	assert.Len(t, ds.Labels, 5)

	dep, nonDep := ds.Counts()
	assert.Equal(t, 3, dep)
	assert.Equal(t, 2, nonDep)

	for i, r := range ds.Records {
		assert.Contains(t, []int{LabelDepression, LabelNonDepression}, r.Label)
		assert.Equal(t, r.Label, ds.Labels[i])
		assert.NotEmpty(t, r.Text)
		assert.NotEmpty(t, r.Path)
	}
}

func TestLoadJoinsNonBlankLines(t *testing.T) {
	depDir, nonDepDir := writeCorpus(t,
		map[string]string{"a.txt": "first line\n\n   \nsecond line\n"},
		map[string]string{"b.txt": "only line"},
	)

	ds, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	byName := map[string]string{}
	for _, r := range ds.Records {
		byName[r.Name] = r.Text
	}
	assert.Equal(t, "first line second line ", byName["a.txt"])
	assert.Equal(t, "only line ", byName["b.txt"])
}

func TestLoadDecodesEscapes(t *testing.T) {
	depDir, nonDepDir := writeCorpus(t,
		map[string]string{"a.txt": `café by the river`},
		map[string]string{"b.txt": "plain"},
	)

	ds, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	byName := map[string]string{}
	for _, r := range ds.Records {
		byName[r.Name] = r.Text
	}
	assert.Equal(t, "café by the river ", byName["a.txt"])
}

func TestLoadShuffleIsSeeded(t *testing.T) {
	dep := map[string]string{}
	nonDep := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		dep[name+".txt"] = name + " down\n"
		nonDep[name+"2.txt"] = name + " up\n"
	}
	depDir, nonDepDir := writeCorpus(t, dep, nonDep)

	first, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.Equal(t, first.Len(), second.Len())
	for i := range first.Records {
		assert.Equal(t, first.Records[i].Name, second.Records[i].Name)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	depDir, _ := writeCorpus(t, map[string]string{"a.txt": "x\n"}, map[string]string{})

	_, err := Load(depDir, filepath.Join(depDir, "no_such_dir"), nil)
	assert.Error(t, err)
}

func TestLoadBadEscapeIsFatal(t *testing.T) {
	depDir, nonDepDir := writeCorpus(t,
		map[string]string{"a.txt": `broken \x4`},
		map[string]string{"b.txt": "fine"},
	)

	_, err := Load(depDir, nonDepDir, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestLoaderCustomNormalizer(t *testing.T) {
	depDir, nonDepDir := writeCorpus(t,
		map[string]string{"a.txt": "SHOUTING\n"},
		map[string]string{"b.txt": "QUIET\n"},
	)

	l := Loader{Normalize: func(raw []byte) (string, error) {
		return string(raw), nil
	}}
	ds, err := l.Load(depDir, nonDepDir, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	for _, r := range ds.Records {
		assert.NotEmpty(t, r.Text)
	}
}
