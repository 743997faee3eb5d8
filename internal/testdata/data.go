package testdata

// A short 4key chart, with a jump and a pair of tied rows.
const data = `{
	"Difficulty": {"Name": "Beginner", "Msd": "1", "NKeys": 4},
	"Rows": [
		{"Ms": 500,  "Columns": 18},
		{"Ms": 800,  "Columns": 8},
		{"Ms": 1100, "Columns": 4},
		{"Ms": 1400, "Columns": 12},
		{"Ms": 1900, "Columns": 16},
		{"Ms": 2200, "Columns": 2},
		{"Ms": 2200, "Columns": 16},
		{"Ms": 2500, "Columns": 4},
		{"Ms": 2650, "Columns": 8},
		{"Ms": 2800, "Columns": 2}
	]
}`
