// Package translate formats user-visible messages for the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// fallback is used when the host reports no usable locale.
var fallback = language.AmericanEnglish

func setup() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("vm16: locale: %v", err)
	}

	tags := []language.Tag{}
	for _, name := range locales {
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = append(tags, fallback)
	}

	printer = message.NewPrinter(tags[0])
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(setup)
	return printer.Sprintf(key, args...)
}
