// Package selftest checks the derivation core against published
// PBKDF2 test vectors.
//
// Vectors come from RFC 6070 (PBKDF2-HMAC-SHA1) and RFC 7914 section
// 11 (PBKDF2-HMAC-SHA256). The 16777216-iteration RFC 6070 vector is
// omitted; it takes minutes and proves nothing the 4096-iteration one
// does not.
package selftest

import (
	"encoding/hex"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/shirosaki/kdfkit/internal/kdf"
)

// Vector is a single known-answer test case.
type Vector struct {
	Name       string
	Password   []byte
	Salt       []byte
	Iterations int
	Length     int
	Hash       kdf.Hash
	Expected   string // hex-encoded derived key
}

// Vectors is the full known-answer suite.
var Vectors = []Vector{
	{
		Name:     "rfc6070-sha1-iter1",
		Password: []byte("password"), Salt: []byte("salt"),
		Iterations: 1, Length: 20, Hash: kdf.SHA1,
		Expected: "0c60c80f961f0e71f3a9b524af6012062fe037a6",
	},
	{
		Name:     "rfc6070-sha1-iter2",
		Password: []byte("password"), Salt: []byte("salt"),
		Iterations: 2, Length: 20, Hash: kdf.SHA1,
		Expected: "ea6c014dc72d6f8ccd1ed92ace1d41f0d8de8957",
	},
	{
		Name:     "rfc6070-sha1-iter4096",
		Password: []byte("password"), Salt: []byte("salt"),
		Iterations: 4096, Length: 20, Hash: kdf.SHA1,
		Expected: "4b007901b765489abead49d926f721d065a429c1",
	},
	{
		Name:     "rfc6070-sha1-long",
		Password: []byte("passwordPASSWORDpassword"), Salt: []byte("saltSALTsaltSALTsaltSALTsaltSALTsalt"),
		Iterations: 4096, Length: 25, Hash: kdf.SHA1,
		Expected: "3d2eec4fe41c849b80c8d83662c0e44a8b291a964cf2f07038",
	},
	{
		Name:     "rfc6070-sha1-nul",
		Password: []byte("pass\x00word"), Salt: []byte("sa\x00lt"),
		Iterations: 4096, Length: 16, Hash: kdf.SHA1,
		Expected: "56fa6aa75548099dcc37d7f03425e0c3",
	},
	{
		Name:     "rfc7914-sha256-iter1",
		Password: []byte("passwd"), Salt: []byte("salt"),
		Iterations: 1, Length: 64, Hash: kdf.SHA256,
		Expected: "55ac046e56e3089fec1691c22544b605f94185216dde0465e68b9d57c20dacbc" +
			"49ca9cccf179b645991664b39d77ef317c71b845b1e30bd509112041d3a19783",
	},
	{
		Name:     "rfc7914-sha256-iter80000",
		Password: []byte("Password"), Salt: []byte("NaCl"),
		Iterations: 80000, Length: 64, Hash: kdf.SHA256,
		Expected: "4ddcd8f60b98be21830cee5ef22701f9641a4418d04c0414aeff08876b34ab56" +
			"a1d425a1225833549adb841b51c9b3176a272bdebba1d078478f62b397f33c8d",
	},
}

// Result is the outcome of running one vector.
type Result struct {
	Vector Vector
	Got    []byte
	Err    error
}

// OK reports whether the vector produced the expected output.
func (r Result) OK() bool {
	return r.Err == nil && hex.EncodeToString(r.Got) == r.Vector.Expected
}

// Diff renders a character diff between the expected and actual hex
// output for failure reports. Empty for passing results.
func (r Result) Diff() string {
	if r.OK() {
		return ""
	}
	if r.Err != nil {
		return fmt.Sprintf("derivation failed: %v", r.Err)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(r.Vector.Expected, hex.EncodeToString(r.Got), false)
	return dmp.DiffPrettyText(diffs)
}

// Run executes the full suite and returns per-vector results.
func Run() []Result {
	results := make([]Result, 0, len(Vectors))
	for _, v := range Vectors {
		got, err := kdf.Derive(v.Password, kdf.Params{
			Salt:       v.Salt,
			Iterations: v.Iterations,
			Length:     v.Length,
			Hash:       v.Hash,
		})
		results = append(results, Result{Vector: v, Got: got, Err: err})
	}
	return results
}
