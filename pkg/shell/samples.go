package shell

// Sample is a ready-made program from the samples catalog.
type Sample struct {
	Title string
	Code  string
}

// Samples holds the catalog shown by the "Load Sample Code" menu entry.
// Every condition reads variables that must be pre-defined before the
// check passes, which is exactly what "Define Variables" is for.
var Samples = []Sample{
	{
		Title: "Basic if-else with multiple assignments",
		Code: `if (x > 10) {
    y = 5;
    z = y;
} else {
    y = 0;
    z = 3;
}
`,
	},
	{
		Title: "Simple equality check",
		Code: `if (a == b) {
    result = 1;
} else {
    result = 0;
}
`,
	},
	{
		Title: "Temperature monitoring system",
		Code: `if (temperature >= 30) {
    status = 1;
    alert = 1;
} else {
    status = 0;
    alert = 0;
}
`,
	},
	{
		Title: "Count and limit checker",
		Code: `if (count < limit) {
    count = 10;
    flag = 1;
} else {
    count = 0;
    flag = 0;
}
`,
	},
}
