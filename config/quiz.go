package config

import (
	"io"
	"os"

	"golang.org/x/net/html"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/log"
)

const (
	DefaultStorageKey  = "quiz_data"
	DefaultSuccessPage = "thank-you.html"
	// EndpointPlaceholder means no collection endpoint has been configured;
	// submissions are logged instead of sent.
	EndpointPlaceholder = "YOUR_GOOGLE_SCRIPT_URL_HERE"
)

// Quiz holds the three page tunables. It is resolved once at startup and
// handed to every component that needs it.
type Quiz struct {
	StorageKey  string `json:"storageKey"`
	EndpointURL string `json:"-"`
	SuccessPage string `json:"successPage"`
}

// Overrides are the optional page-level values; empty means absent.
type Overrides struct {
	StorageKey  string
	EndpointURL string
	SuccessPage string
}

func DefaultQuiz() Quiz {
	return Quiz{
		StorageKey:  DefaultStorageKey,
		EndpointURL: EndpointPlaceholder,
		SuccessPage: DefaultSuccessPage,
	}
}

func Resolve(o Overrides) Quiz {
	q := DefaultQuiz()
	if o.StorageKey != "" {
		q.StorageKey = o.StorageKey
	}
	if o.EndpointURL != "" {
		q.EndpointURL = o.EndpointURL
	}
	if o.SuccessPage != "" {
		q.SuccessPage = o.SuccessPage
	}
	return q
}

func (q Quiz) EndpointConfigured() bool {
	return q.EndpointURL != "" && q.EndpointURL != EndpointPlaceholder
}

// PageOverrides reads the data-quiz-* attributes of the page's <body>.
func PageOverrides(r io.Reader) (o Overrides, err error) {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return o, nil
			}
			return o, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "body" {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "data-quiz-storage-key":
					o.StorageKey = string(val)
				case "data-quiz-google-script":
					o.EndpointURL = string(val)
				case "data-quiz-success-page":
					o.SuccessPage = string(val)
				}
			}
			return o, nil
		}
	}
}

// LoadQuiz resolves the quiz tunables from the landing page at path. An
// unreadable page keeps the defaults.
func LoadQuiz(path string) Quiz {
	f, err := os.Open(path)
	if err != nil {
		log.Warnf("config.page: %s, using defaults", err)
		return DefaultQuiz()
	}
	defer f.Close()

	o, err := PageOverrides(f)
	if err != nil {
		log.Warnf("config.page.parse: %s, using defaults", err)
		return DefaultQuiz()
	}
	return Resolve(o)
}
