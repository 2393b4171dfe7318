// Package domain models the SEC XBRL "companyconcept" data used to report a
// company's common shares outstanding.
//
// # Data Source
//
// Each document comes from the SEC frames API at
//
//	https://data.sec.gov/api/xbrl/companyconcept/CIK<cik>/dei/EntityCommonStockSharesOutstanding.json
//
// and carries every value the filer reported for the dei concept
// EntityCommonStockSharesOutstanding, grouped by unit. Only the "shares" unit
// is read.
//
// # SEC Data Conventions
//
// CIK format:
//
//	Ten decimal digits, zero-padded on the left: "0001267238".
//	Inputs are checked against ^[0-9]{10}$ and never padded or trimmed here.
//
// Observation fields:
//
//	val    reported value (a JSON number; anything else is ignored)
//	fy     fiscal year of the filing, usually a JSON number such as 2023
//	fp     fiscal period: FY, Q1, Q2, Q3
//	form   source form: 10-K, 10-Q, ...
//	end    period end date, YYYY-MM-DD
//	filed  filing date, YYYY-MM-DD
//	accn   accession number of the filing
//	frame  calendar frame, e.g. CY2023Q1I (absent on duplicates)
//
// # Fiscal Year Filtering
//
// The fy label is compared as text against "2020", so any label that sorts
// after "2020" is kept. For four-digit years this is the same as a numeric
// comparison; for labels such as "2020A" it is not. The text comparison is
// kept on purpose and covered by tests.
//
// # Range Selection
//
// ReduceShares keeps the first observation that reaches a new maximum or
// minimum, so ties resolve to the earliest entry in document order.
package domain
