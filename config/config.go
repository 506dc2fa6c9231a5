package config

import (
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	DBUrl           string
	PagePath        string
	PublicDir       string
	CORSOrigins     []string
	DeliveryTimeout time.Duration
	StorageQuota    int
	Debug           bool
}

func ParseFlags() (cfg Config, err error) {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	fs.UintVar(&port, "port", 80, "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", "quiz.sqlite", "path to SQLite3 DB file, postgres:// URL, or memory:")
	fs.StringVar(&cfg.PagePath, "page", "public/index.html", "landing page carrying the data-quiz-* attributes and the quiz form")
	fs.StringVar(&cfg.PublicDir, "public", "public", "directory of static page assets")
	var origins string
	fs.StringVar(&origins, "cors-origins", "", "comma separated origins allowed to call the quiz API")
	var timeout uint
	fs.UintVar(&timeout, "delivery-timeout", 15, "deadline for delivering a submission, in seconds")
	fs.IntVar(&cfg.StorageQuota, "storage-quota", 5<<20, "max size in bytes of a stored quiz session (0 disables)")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.DeliveryTimeout = time.Duration(timeout) * time.Second
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
