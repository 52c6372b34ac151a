package tape

// DefaultPrelude is the standard vocabulary written in tape itself.
const DefaultPrelude = `
[ p nl ] \pl def!
\pl "( a -- ) Prints a value and a newline." def-usage

[ ep enl ] \epl def!
\epl "( a -- ) Prints a value and a newline to the diagnostic stream." def-usage

[ p ] \print def!
\print "( a -- ) Prints a value; strings print raw." def-usage

[ pl ] \println def!
\println "( a -- ) Prints a value and a newline." def-usage
`
