// Package fuzztests holds Go fuzz harnesses for the bonk front end
// (source -> lexer -> parser -> resolve -> check). They look for panics,
// hangs and span corruption on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
