package bitfield

// Unsigned specifiers, one per width. Storage follows StorageFor:
// B1..B8 read into uint8, B9..B16 uint16, B17..B32 uint32, B33..B64 uint64
// and B65..B128 Uint128.
var (
	B1   = Uint{bits: 1}
	B2   = Uint{bits: 2}
	B3   = Uint{bits: 3}
	B4   = Uint{bits: 4}
	B5   = Uint{bits: 5}
	B6   = Uint{bits: 6}
	B7   = Uint{bits: 7}
	B8   = Uint{bits: 8}
	B9   = Uint{bits: 9}
	B10  = Uint{bits: 10}
	B11  = Uint{bits: 11}
	B12  = Uint{bits: 12}
	B13  = Uint{bits: 13}
	B14  = Uint{bits: 14}
	B15  = Uint{bits: 15}
	B16  = Uint{bits: 16}
	B17  = Uint{bits: 17}
	B18  = Uint{bits: 18}
	B19  = Uint{bits: 19}
	B20  = Uint{bits: 20}
	B21  = Uint{bits: 21}
	B22  = Uint{bits: 22}
	B23  = Uint{bits: 23}
	B24  = Uint{bits: 24}
	B25  = Uint{bits: 25}
	B26  = Uint{bits: 26}
	B27  = Uint{bits: 27}
	B28  = Uint{bits: 28}
	B29  = Uint{bits: 29}
	B30  = Uint{bits: 30}
	B31  = Uint{bits: 31}
	B32  = Uint{bits: 32}
	B33  = Uint{bits: 33}
	B34  = Uint{bits: 34}
	B35  = Uint{bits: 35}
	B36  = Uint{bits: 36}
	B37  = Uint{bits: 37}
	B38  = Uint{bits: 38}
	B39  = Uint{bits: 39}
	B40  = Uint{bits: 40}
	B41  = Uint{bits: 41}
	B42  = Uint{bits: 42}
	B43  = Uint{bits: 43}
	B44  = Uint{bits: 44}
	B45  = Uint{bits: 45}
	B46  = Uint{bits: 46}
	B47  = Uint{bits: 47}
	B48  = Uint{bits: 48}
	B49  = Uint{bits: 49}
	B50  = Uint{bits: 50}
	B51  = Uint{bits: 51}
	B52  = Uint{bits: 52}
	B53  = Uint{bits: 53}
	B54  = Uint{bits: 54}
	B55  = Uint{bits: 55}
	B56  = Uint{bits: 56}
	B57  = Uint{bits: 57}
	B58  = Uint{bits: 58}
	B59  = Uint{bits: 59}
	B60  = Uint{bits: 60}
	B61  = Uint{bits: 61}
	B62  = Uint{bits: 62}
	B63  = Uint{bits: 63}
	B64  = Uint{bits: 64}
	B65  = Uint{bits: 65}
	B66  = Uint{bits: 66}
	B67  = Uint{bits: 67}
	B68  = Uint{bits: 68}
	B69  = Uint{bits: 69}
	B70  = Uint{bits: 70}
	B71  = Uint{bits: 71}
	B72  = Uint{bits: 72}
	B73  = Uint{bits: 73}
	B74  = Uint{bits: 74}
	B75  = Uint{bits: 75}
	B76  = Uint{bits: 76}
	B77  = Uint{bits: 77}
	B78  = Uint{bits: 78}
	B79  = Uint{bits: 79}
	B80  = Uint{bits: 80}
	B81  = Uint{bits: 81}
	B82  = Uint{bits: 82}
	B83  = Uint{bits: 83}
	B84  = Uint{bits: 84}
	B85  = Uint{bits: 85}
	B86  = Uint{bits: 86}
	B87  = Uint{bits: 87}
	B88  = Uint{bits: 88}
	B89  = Uint{bits: 89}
	B90  = Uint{bits: 90}
	B91  = Uint{bits: 91}
	B92  = Uint{bits: 92}
	B93  = Uint{bits: 93}
	B94  = Uint{bits: 94}
	B95  = Uint{bits: 95}
	B96  = Uint{bits: 96}
	B97  = Uint{bits: 97}
	B98  = Uint{bits: 98}
	B99  = Uint{bits: 99}
	B100 = Uint{bits: 100}
	B101 = Uint{bits: 101}
	B102 = Uint{bits: 102}
	B103 = Uint{bits: 103}
	B104 = Uint{bits: 104}
	B105 = Uint{bits: 105}
	B106 = Uint{bits: 106}
	B107 = Uint{bits: 107}
	B108 = Uint{bits: 108}
	B109 = Uint{bits: 109}
	B110 = Uint{bits: 110}
	B111 = Uint{bits: 111}
	B112 = Uint{bits: 112}
	B113 = Uint{bits: 113}
	B114 = Uint{bits: 114}
	B115 = Uint{bits: 115}
	B116 = Uint{bits: 116}
	B117 = Uint{bits: 117}
	B118 = Uint{bits: 118}
	B119 = Uint{bits: 119}
	B120 = Uint{bits: 120}
	B121 = Uint{bits: 121}
	B122 = Uint{bits: 122}
	B123 = Uint{bits: 123}
	B124 = Uint{bits: 124}
	B125 = Uint{bits: 125}
	B126 = Uint{bits: 126}
	B127 = Uint{bits: 127}
	B128 = Uint{bits: 128}
)
