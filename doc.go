// Package lingopack translates text between languages using an offline
// translation engine whose per-pair language models are downloaded and
// installed on demand.
//
// The heart of the package is the availability cache: for a given
// (source, target) language pair it decides whether a translation model is
// already usable and, if not, coordinates exactly one download/install
// attempt even under concurrent callers. Contending callers get an immediate
// Busy signal instead of triggering redundant downloads.
//
// The Translator facade on top never fails outward: detection, availability
// and engine faults all degrade to returning the input text unchanged.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/lingopack"
//	    "github.com/ZaguanLabs/lingopack/engine"
//	)
//
//	func main() {
//	    eng := engine.NewRemoteEngine(engine.RemoteConfig{
//	        IndexURL:     "https://models.example.com/index.json",
//	        TranslateURL: "http://localhost:5000/translate",
//	        DataDir:      "/var/lib/lingopack",
//	    })
//
//	    t := lingopack.NewTranslator(eng)
//
//	    out := t.Translate(context.Background(),
//	        "Il gatto non è qui",
//	        "auto - Auto-detect",
//	        "en - English")
//	    fmt.Println(out)
//	}
//
// A single Translator (or a single shared PackageCache) should be used per
// process: the one-download-per-pair guarantee only holds among callers of
// the same PackageCache instance.
package lingopack
