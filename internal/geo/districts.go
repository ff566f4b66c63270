// Package geo computes distances between districts from a built-in table
// of district-headquarters coordinates. The matching engine uses it as a
// proximity gate; anything more precise than headquarters-to-headquarters
// great-circle distance is out of scope.
package geo

import (
	"math"
	"strings"
)

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// districts maps lower-cased district names to their headquarters
// coordinates. Covers the Tamil Nadu districts the app serves.
var districts = map[string]Coordinate{
	"ariyalur":        {11.1401, 79.0786},
	"chengalpattu":    {12.6921, 79.9759},
	"chennai":         {13.0827, 80.2707},
	"coimbatore":      {11.0168, 76.9558},
	"cuddalore":       {11.7480, 79.7714},
	"dharmapuri":      {12.1211, 78.1582},
	"dindigul":        {10.3624, 77.9695},
	"erode":           {11.3410, 77.7172},
	"kallakurichi":    {11.7383, 78.9571},
	"kanchipuram":     {12.8342, 79.7036},
	"kanyakumari":     {8.1833, 77.4119},
	"karur":           {10.9601, 78.0766},
	"krishnagiri":     {12.5186, 78.2137},
	"madurai":         {9.9252, 78.1198},
	"mayiladuthurai":  {11.1036, 79.6550},
	"nagapattinam":    {10.7672, 79.8449},
	"namakkal":        {11.2189, 78.1674},
	"nilgiris":        {11.4064, 76.6932},
	"perambalur":      {11.2342, 78.8807},
	"pudukkottai":     {10.3833, 78.8001},
	"ramanathapuram":  {9.3639, 78.8395},
	"ranipet":         {12.9247, 79.3333},
	"salem":           {11.6643, 78.1460},
	"sivaganga":       {9.8433, 78.4809},
	"tenkasi":         {8.9598, 77.3161},
	"thanjavur":       {10.7870, 79.1378},
	"theni":           {10.0104, 77.4768},
	"thoothukudi":     {8.7642, 78.1348},
	"tiruchirappalli": {10.7905, 78.7047},
	"tirunelveli":     {8.7139, 77.7567},
	"tirupathur":      {12.4950, 78.5686},
	"tiruppur":        {11.1085, 77.3411},
	"tiruvallur":      {13.1439, 79.8983},
	"tiruvannamalai":  {12.2253, 79.0747},
	"thiruvarur":      {10.7726, 79.6368},
	"vellore":         {12.9165, 79.1325},
	"villupuram":      {11.9401, 79.4861},
	"virudhunagar":    {9.5851, 77.9579},
}

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometres between two
// districts. Equal names (case-insensitive) are distance 0 even when the
// district is not in the table. ok is false when either district is
// unknown and the names differ.
func Distance(a, b string) (km float64, ok bool) {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	if strings.EqualFold(a, b) {
		return 0, true
	}

	ca, okA := districts[strings.ToLower(a)]
	cb, okB := districts[strings.ToLower(b)]
	if !okA || !okB {
		return 0, false
	}

	return haversine(ca, cb), true
}

// Known reports whether the district is present in the coordinate table.
func Known(district string) bool {
	_, ok := districts[strings.ToLower(strings.TrimSpace(district))]
	return ok
}

// haversine computes the great-circle distance between two coordinates.
func haversine(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
