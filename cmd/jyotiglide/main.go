// Command jyotiglide prints sidereal calendar units, lunar months and
// Vimshottari dasha periods.
//
// Examples:
//
//	jyotiglide classify 2025-11-30T06:00
//	jyotiglide transitions --kind nakshatra --from 2025-11-30 --hours 48
//	jyotiglide day 2025-10-21 --lat 25.3176 --lon 82.9739 --tz Asia/Kolkata
//	jyotiglide month 2023-08-01 -n 3
//	jyotiglide dasha 1990-05-04T08:45 --all -f json
//	jyotiglide profile --days 90 --outcsv errors.csv
package main

func main() {
	execute()
}
