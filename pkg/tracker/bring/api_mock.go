package bring

import "github.com/tournevent/parceltrack/pkg/tracker/mock"

// SamplePayload is a representative tracking.json answer for a delivered parcel.
const SamplePayload = `{
  "consignmentSet": [{
    "consignmentId": "70438101015432113",
    "packageSet": [{
      "packageNumber": "370438101015432116",
      "eventSet": [
        {"status": "DELIVERED", "city": "OSLO", "description": "The shipment has been delivered", "dateIso": "2024-03-06T13:02:00+01:00"},
        {"status": "DELIVERY_CHANGED", "city": "OSLO", "description": "Delivery date changed", "dateIso": "2024-03-05T18:40:00+01:00"},
        {"status": "TRANSPORT_TO_RECIPIENT", "city": "OSLO", "description": "The shipment is on its way to the recipient", "dateIso": "2024-03-06T07:55:00+01:00"},
        {"status": "IN_TRANSIT", "city": "LANGHUS", "description": "The shipment has arrived at the terminal", "dateIso": "2024-03-05T04:11:00+01:00"},
        {"status": "PRE_NOTIFIED", "description": "Electronic notification received", "dateIso": "2024-03-04T10:20:00+01:00"}
      ]
    }]
  }]
}`

// NewMockDataProvider returns a mock provider answering every request with SamplePayload.
func NewMockDataProvider() *mock.DataProvider {
	return mock.NewDataProvider(SamplePayload)
}
