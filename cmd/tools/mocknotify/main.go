// mocknotify fires a MercadoPago-style payment notification at a running
// instance, either as query parameters (?topic=payment&id=...) or as a JSON
// body ({type, data:{id}}), to exercise the webhook intake locally.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

type notifyBody struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func main() {
	target := flag.String("url", "http://localhost:8080/api/mp/webhook", "Webhook URL")
	kind := flag.String("kind", "payment", "Notification kind (payment, merchant_order, ...)")
	paymentID := flag.String("payment-id", "", "Payment id the notification points at")
	viaQuery := flag.Bool("query", false, "Deliver via query parameters instead of a JSON body")
	dryRun := flag.Bool("dry-run", false, "Only print the request, don't send")

	flag.Parse()

	if *paymentID == "" {
		fmt.Fprintln(os.Stderr, "Error: -payment-id is required")
		os.Exit(1)
	}

	var req *http.Request
	var err error

	if *viaQuery {
		u, uerr := url.Parse(*target)
		if uerr != nil {
			fmt.Fprintf(os.Stderr, "Error parsing url: %v\n", uerr)
			os.Exit(1)
		}
		q := u.Query()
		q.Set("topic", *kind)
		q.Set("id", *paymentID)
		u.RawQuery = q.Encode()

		fmt.Printf("POST %s (empty body)\n", u.String())
		req, err = http.NewRequest(http.MethodPost, u.String(), nil)
	} else {
		payload := notifyBody{Type: *kind}
		payload.Data.ID = *paymentID

		body, merr := json.Marshal(payload)
		if merr != nil {
			fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", merr)
			os.Exit(1)
		}

		fmt.Printf("POST %s\nBody: %s\n", *target, string(body))
		req, err = http.NewRequest(http.MethodPost, *target, bytes.NewReader(body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
