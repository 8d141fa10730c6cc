// Package luau decodes Luau bytecode containers.
//
// A container is a version byte, a string table, a list of function
// prototypes and the index of the entry function. Parsing records byte
// ranges into the input buffer rather than copying strings or code, so
// every range doubles as an address in a flat address space where the
// address of a byte is its offset in the file.
//
// # Parsing
//
//	data, _ := os.ReadFile("module.luau")
//	module, err := luau.ParseModule(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parse and check every cross reference:
//
//	module, err := luau.ParseModuleValidate(data)
//
// Parsing never panics. Any short read, bad version or unknown constant
// tag is a format error (errors.IsFormat) and no Module is returned.
//
// # Instructions
//
// Instructions are 4-byte words, some followed by a 4-byte aux word.
// The opcode table is the single description of every opcode:
//
//	info, ok := luau.Lookup(data[addr])
//	ins, err := luau.DecodeInstruction(data[addr:])
//	fmt.Println(ins.Opcode(), ins.A(), ins.D())
//
// Jump operands count words from the instruction after the jump:
//
//	target := luau.JumpTarget(addr, int64(ins.D()))
//
// # Encoding
//
// Container builds valid bytecode, mainly for fixtures:
//
//	c := luau.Container{
//	    Strings: []string{"print"},
//	    Protos: []luau.Proto{{
//	        Code: luau.Words(luau.EncodeABC(luau.OpReturn, 0, 1, 0)),
//	    }},
//	}
//	module, _ := luau.ParseModule(c.Encode())
package luau
