package gls

import "github.com/tournevent/parceltrack/pkg/tracker/mock"

// SamplePayload is a representative rstt001 answer for a delivered parcel.
const SamplePayload = `{
  "tuStatus": [{
    "history": [
      {"address": {"city": "Neuenstein", "countryName": "Germany"}, "evtDscr": "The parcel has been delivered.", "date": "2024-03-06", "time": "11:42:10"},
      {"address": {"city": "Neuenstein", "countryName": "Germany"}, "evtDscr": "The parcel is expected to be delivered during the day.", "date": "2024-03-06", "time": "07:03:55"},
      {"address": {"city": "Bad Hersfeld", "countryName": "Germany"}, "evtDscr": "The parcel has reached the parcel center.", "date": "2024-03-05", "time": "22:17:31"},
      {"address": {"city": "Hamburg", "countryName": "Germany"}, "evtDscr": "The parcel was handed over to GLS.", "date": "2024-03-05", "time": "16:20:04"}
    ],
    "progressBar": {
      "evtNos": ["3.0", "11.0", "2.0", "0.0"],
      "statusInfo": "DELIVERED"
    },
    "signature": {"value": "MUELLER"}
  }]
}`

// NewMockDataProvider returns a mock provider answering every request with SamplePayload.
func NewMockDataProvider() *mock.DataProvider {
	return mock.NewDataProvider(SamplePayload)
}
