package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// fiscalYearFloor is compared as text against each observation's fy label.
const fiscalYearFloor FiscalYear = "2020"

// SharePoint is a single selected observation.
type SharePoint struct {
	Val float64    `json:"val"`
	FY  FiscalYear `json:"fy"`
}

// MarshalJSON writes an infinite val as the string "+Inf" or "-Inf", which
// plain JSON numbers cannot hold.
func (p SharePoint) MarshalJSON() ([]byte, error) {
	type plain SharePoint
	if !math.IsInf(p.Val, 0) {
		return json.Marshal(plain(p))
	}
	return json.Marshal(struct {
		Val string     `json:"val"`
		FY  FiscalYear `json:"fy"`
	}{strconv.FormatFloat(p.Val, 'f', -1, 64), p.FY})
}

// ShareRange is the largest and smallest shares-outstanding value reported
// for fiscal years after 2020.
type ShareRange struct {
	CIK         string     `json:"cik"`
	EntityName  string     `json:"entityName"`
	Max         SharePoint `json:"max"`
	Min         SharePoint `json:"min"`
	RetrievedAt time.Time  `json:"retrievedAt"`
}

// ReduceShares filters the shares series to numeric values with fy > "2020"
// and returns the extremes. Ties keep the earliest observation.
func ReduceShares(c CompanyConcept) (ShareRange, error) {
	points := eligiblePoints(c.Units.Shares)
	if len(points) == 0 {
		return ShareRange{}, ErrNoValidData
	}

	maxPoint, minPoint := points[0], points[0]
	for _, p := range points[1:] {
		if p.Val > maxPoint.Val {
			maxPoint = p
		}
		if p.Val < minPoint.Val {
			minPoint = p
		}
	}

	return ShareRange{
		EntityName: c.EntityName,
		Max:        maxPoint,
		Min:        minPoint,
	}, nil
}

// Stamp attaches the resolved CIK and the retrieval time.
func Stamp(r ShareRange, cik string) ShareRange {
	r.CIK = cik
	r.RetrievedAt = Now().UTC()
	return r
}

func eligiblePoints(obs []Observation) []SharePoint {
	points := make([]SharePoint, 0, len(obs))
	for _, o := range obs {
		if o.FY <= fiscalYearFloor {
			continue
		}
		v, ok := o.Numeric()
		if !ok {
			continue
		}
		points = append(points, SharePoint{Val: v, FY: o.FY})
	}
	return points
}
