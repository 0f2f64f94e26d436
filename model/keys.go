package model

const (
	backlogTag  = ".BACKLOG"
	finishedTag = ".C.FINISHED."
	rateTag     = ".C.RPM."
)

// KeySet holds the backend keys owned by a single queue.
type KeySet struct {
	// Backlog is the list producers push payloads onto and consumers pop from.
	Backlog string `json:"backlog" yaml:"backlog"`
	// Finished counts every job that left the queue; it never expires.
	Finished string `json:"finished" yaml:"finished"`
	// Rate counts completions inside a rolling 60 second window.
	Rate string `json:"rate" yaml:"rate"`
}

// DeriveKeys returns the key set for the supplied namespace and suffix, i.e.
// N.S.BACKLOG, N.S.C.FINISHED. and N.S.C.RPM.
func DeriveKeys(namespace, suffix string) KeySet {
	base := namespace + "." + suffix
	return KeySet{
		Backlog:  base + backlogTag,
		Finished: base + finishedTag,
		Rate:     base + rateTag,
	}
}

// KeyTable caches derived key sets by queue suffix. It is built once and only
// read afterwards, so it is safe to share between goroutines.
type KeyTable struct {
	namespace string
	keys      map[string]KeySet
}

// NewKeyTable derives key sets for every suffix of the plan.
func NewKeyTable(namespace string, plan Plan) *KeyTable {
	ret := &KeyTable{namespace: namespace, keys: make(map[string]KeySet, len(plan))}
	for suffix := range plan {
		ret.keys[suffix] = DeriveKeys(namespace, suffix)
	}
	return ret
}

// Namespace returns the key prefix the table was built with.
func (t *KeyTable) Namespace() string {
	return t.namespace
}

// Lookup returns the key set for a suffix.
func (t *KeyTable) Lookup(suffix string) (KeySet, bool) {
	ret, ok := t.keys[suffix]
	return ret, ok
}
