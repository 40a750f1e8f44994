//go:build js && wasm

package detector

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"syscall/js"
	"time"
)

// FetchCascade loads a cascade file served next to the page, resolving path
// against the `location.href` of the document.
func FetchCascade(path string) ([]byte, error) {
	href := js.Global().Get("location").Get("href")
	u, err := url.Parse(href.String())
	if err != nil {
		return nil, err
	}
	u.Path = path
	u.RawQuery = fmt.Sprint(time.Now().UnixNano())

	log.Println("loading cascade file: " + u.String())
	resp, err := http.Get(u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detector: fetching %s: %s", u.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
