package crowdtest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/crowdchain/crowd"
	"github.com/crowdchain/crowd/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db crowd.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "crowdtest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	st := iavl.NewCommitStore(dbpath, "db")
	return st, func() { os.RemoveAll(dbpath) }
}
