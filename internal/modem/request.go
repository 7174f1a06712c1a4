// internal/modem/request.go
package modem

import "strconv"

// RestartBody is the form submission of the "Restart Cable Modem" button
// on the SB4100 configuration page.
const RestartBody = "BUTTON_INPUT=Restart+Cable+Modem"

// RestartPath is the configuration page the form posts to.
const RestartPath = "/configdata.html"

// BuildRestartRequest returns the complete raw request for host.
// Layout is device-locked; no other headers are sent.
func BuildRestartRequest(host string) []byte {
	req := "POST " + RestartPath + " HTTP/1.1\r\n" +
		"Host: " + host + "\r\n" +
		"Referer: http://" + host + RestartPath + "\r\n" +
		"Content-Type: application/x-www-form-urlencoded\r\n" +
		"Content-Length: " + strconv.Itoa(len(RestartBody)) + "\r\n" +
		"\r\n" +
		RestartBody
	return []byte(req)
}
