// Package poseidon2 implements the Perm3 arithmetic-hash permutation: a
// fixed-width t=3, rate=2, capacity=1 sponge over the BN254 scalar field,
// with domain-separated two-to-one and sequence hashing. Every constant
// below is copied verbatim from the reference implementation; the
// permutation schedule (4 full rounds, 56 partial rounds, 4 full rounds)
// and the external/internal MDS mixes must not be altered.
package poseidon2

import (
	"github.com/kysee/ocash-core/fr"
)

// Domain is a hash domain-separation tag.
type Domain int

const (
	DomainNone Domain = iota
	DomainRecord
	DomainNullifier
	DomainMerkle
	DomainPolicy
	DomainArray
	DomainMemo
	DomainAsset
	DomainKeyDerivation
)

// Value returns the field element a Domain maps to: an eight-byte
// big-endian ASCII-derived constant, zero-padded to a 254-bit field
// element.
func (d Domain) Value() fr.Element {
	var v uint64
	switch d {
	case DomainNone:
		v = 0x0000000000000000
	case DomainRecord:
		v = 0x5245434f52440000 // "RECORD"
	case DomainNullifier:
		v = 0x4e554c4c49464945 // "NULLIFIE"
	case DomainMerkle:
		v = 0x4d45524b4c450000 // "MERKLE"
	case DomainPolicy:
		v = 0x504f4c4943590000 // "POLICY"
	case DomainArray:
		v = 0x4152524159000000 // "ARRAY"
	case DomainMemo:
		v = 0x4d454d4f00000000 // "MEMO"
	case DomainAsset:
		v = 0x4153534554000000 // "ASSET"
	case DomainKeyDerivation:
		v = 0x4b45594445520000 // "KEYDER"
	}
	return fr.FromUint64(v)
}

func c(s string) fr.Element {
	e, err := fr.FromHex(s)
	if err != nil {
		panic("poseidon2: invalid embedded round constant " + s)
	}
	return e
}

// fullRoundKeysStart returns the 4 start-round [c0,c1,c2] triples.
var fullRoundKeysStart = [4][3]fr.Element{
	{
		c("2ba117aea05b03e08d3e8cdc3441e489710b7eae2127240261f1161a4c375ec3"),
		c("13d62b66e9d5236b1c4349076bc462097eca577bcd980e3e5262986898001a95"),
		c("2ceb56ddb7d8c8886771c2f12a458edd58886a852e29ea9a157cb6c3ba8201a2"),
	},
	{
		c("0ba9383b6a5ba188031f7377b152f8df895115269e8437f9eccdc767ecaf458f"),
		c("188b8a2dd4baa4aeda8cf74c2cb3f5dfa482de9987f03fdeafd832f6c3be19c6"),
		c("2672744cbbe045c930be1dcaae5b38cf4f0b9673514cbe5129908164ef7d7b58"),
	},
	{
		c("1e0365a9b92d37b502579f6a3c3236df558f8417be56e58908897fa5cfbf15bb"),
		c("2060426d53c6386a3f2f4e29d886bfc8e1be0ddafbdb50a9fd0be33143d1004a"),
		c("1b917ac39485d49545e20d21e06735af839b1360e077daa4dfc2938ff91ce4d0"),
	},
	{
		c("2065aa0d75c8773cd397593ca429c21ad2d10c066a09dea04378fed619021786"),
		c("04767c771c63b9efcaee16d3463c0457ba7f029dd533e5c7f4b3ccef3677db6b"),
		c("2b632ce28c5d4908c11b68f4ed9e3da0dd104c018d2376eaa0abd28f9cf8bd76"),
	},
}

// partialRoundKeys returns the 56 partial-round constants (lane 0 only).
var partialRoundKeys = [56]fr.Element{
	c("122bd8150e3bf5129ed1f41b201d3881fe41c68ed194ffe6b414de857f03765d"),
	c("23d4440906f4412f8994c3fa4cc08e849c0fbd10dc12518a07c0e8d77562c13f"),
	c("2c5e99b87c743de13935855afed6cf836d6dd62ce31dfdca21efcfe197c9e321"),
	c("06fba87a3924cbbb4117b782aa697bbc23900de6bf31a28ecc2f6a9225aebfe4"),
	c("0c954d8f108f43ece97439775cfa22e1343a6cacae91604c76601eb6c7e90e1b"),
	c("20980b82aa1ac356a0a48bc8101468c74f1efd47cd29ea01a852d6af93836a44"),
	c("07e9df3ac21d190f9281b2ac56bf9dcce410bf95bd7fc196f4cfbb86acb60ec6"),
	c("01e7459f591496f37d759e6eb427fa073eb923d9a67b066271dabe8e793ad796"),
	c("0c1b5194e4c1af42dc01dadde54c73624ce1b8a0302d25ad499b2036f768e6e8"),
	c("0cfd0f94030d285ffb85c8aa9f0675ac7077133b5a329c78b74656932fac8a27"),
	c("0212ea73cc21625d7f1e361ad3df28c9f9cfd57fec66fb1bf69f1ab7cd11c55c"),
	c("25fbc0b1fa13ea08b022f853e9b07a5c0fe9d5fb23c26eec54599100e60d57f6"),
	c("074521adcc4a9387f4d6feeac681b1115b92f5e98e35d6d591d79b75d61d204c"),
	c("267f9f5e6eea2a9d8816d7b683ab95d8121adeeaae66990bd24be95b6f0a0cd9"),
	c("2fdf445c73cde6a7f4f23bef9bf520ceb72f08dabd391b118a253630f2878ade"),
	c("02645e68b2890d258fa7eaffbc587c5ca8f7099cc4ddf923e23672c6153a8ae7"),
	c("0c9e3d4841852fcf02818cdd86c3d86dcae4c1f7c140c3b17edc1f17b2652079"),
	c("0a42e90f71ff44221ec000e0ff81b6f229292b0cb4470ff7c66c1fe06d9e69aa"),
	c("1fb9a7d91fcf3173a1d80d3749192ed7d8a5b50cfd631571dc15154d0e71d7a2"),
	c("10bff373cf04aca27c90792eaa545000503d6f118f4d9c5a906203aefe316d42"),
	c("0956799581ce2c42ed5b55a130fb853683014e7cb9c3f32b9dfa4cf5c53127a"),
	c("2b0bd2da61cae5f4f442b449cb1e9cc6af7a6d126b02ffd65aa887278741ab07"),
	c("01c76af7e47ec30b4139081219fd7d173d498ba2e2ca928fb2b26019b16e5c64"),
	c("2d9e586bd3c8cde82932cd1397db8564cbdebfc4f5c970e28a2d9f559db9d696"),
	c("2c4b2a625ac29f468cc94f6a3ebdb7bb962f245568676073b829b95ace6d1ccc"),
	c("027299c22883e4d52b8251a0724083c063e7be0a7f0070fba1c8d4d206841e6a"),
	c("2af17121feea81979d98fa13cfdb5cf7f1f1717168ee7bf2da3709e589c381e7"),
	c("09ad5501e4c9db7fee67f2fda8ce71162e6b2e0fc252f03c3d40470168ed4ea7"),
	c("276bf230a40c51dac71697a84d603ac0423e3d8f23cc9330a23306976f7f902d"),
	c("0b40af0d626b972c04b83a3897031c9bd0b4acc3b138fc505e15fdb6b60ba5f8"),
	c("15c6033f97a1337ce18e37d0d22cf07f6c80f96af620c4d67c351e7210d688cf"),
	c("27a5134eeea854449d10ae3dd3e17cbfc0f24c21a4265bb1e99982af48eb3966"),
	c("0a3f27bafac251bbc63797868e84434a412400913e2e11616cb18f3bd01eb0d7"),
	c("09409ff82de14430d5f1f16dd157c8175372a4f922b3563550230390c4476c59"),
	c("1b6b39381a0b663344ee9a8cff259b84c593b709cf543014996ec33c7a00008b"),
	c("16ac5b58d45468a298e60cbb92055daa665f29dd7194c77cac679c35f6f64552"),
	c("121fb0f41bab603e46a4f4cb110d0a56bceff1f3af5577e7715e3777a5cfe7d8"),
	c("056f262099a9d3e1d0060799732486358ad8b7bd2f515dd8767c2d19917d282d"),
	c("0626740e4ff0fe7b8df127d56310c0c1fc47a07f630983bd55800ee8e24911d8"),
	c("0b2b0b1213bed0c4b40fe2c938d076c65f22fe21eef4767b507561a63eea2874"),
	c("1674784dcc6d6b3ef6467ee673c85311d1375aa39122ecf4b942caba565a6982"),
	c("0690678b4bc42090fdbed7a334b323db5441a24c92b5b234f54ec16cff367db3"),
	c("186719b1d7d0fb0087396c72ba57f53a5b67dc1077b82caadc62d5cdf7cd8db4"),
	c("0178ed1e5ce3430020a30f0684fb01c60136e731a9a8c6afcbad139af2e8fcf7"),
	c("1f31dc123a2384c71b57678dcf5a2fa6294f88a21a333cbec5facbc69424306c"),
	c("017d928d2e3dbbe3a273f0bec79f881f8b75f4d333002b528fb1ae737cbf13eb"),
	c("2f4fb0605668c045469510611c0137828be267709c0fa9392c28c2d95f9504bb"),
	c("2ee2627a181d62b24501da3efccba9b4a9b61e6d9a7cdaa152c39347bdebe481"),
	c("254cd2d79997885ca82e0ec5998aab8de0b09a02d04f54dcbd1a6f8776fd537b"),
	c("2aa675a61643b83ad60d88b16c574a4695fc1b463dd44f8bbd674d1a1294dbfe"),
	c("2dbc70b7e86794439ebd7d10cee37147e51769ed7a441187f6e22e644a003a51"),
	c("19fc425ab24feca173ddab7070ebb4a2eeb9b82bee3a399ebedef2affe3ecd96"),
	c("1b7a37f7ef7ce586df66295e955aba1b9b15052673534d4c13e02c19f02959e2"),
	c("0772f989bc7bc4361340c9887a0225b92a192c14a85dc3ade21f6135b9239341"),
	c("13f24e0e97fad4c45866626b9a1b9f3cc46f4ab2a018f0bda5bdade2087a07cf"),
	c("1976c62d2c2c4ba095ff81bef054fe0757d7301950ede83426a34dd6cc12a4a5"),
}

// fullRoundKeysEnd returns the 4 end-round [c0,c1,c2] triples.
var fullRoundKeysEnd = [4][3]fr.Element{
	{
		c("1ea7aeca90530805e5fa1b676a6f12ace24c1c0f5b6cd68bf01558be11bb864a"),
		c("070249ba94928b35fe02f56b12590e86f21a8a19e949ec10b62a5fcefea5c2b3"),
		c("02cd4b5f5d87caaac64f78c44a62c408211c2e1d70a69549f9f1d36bd8a46073"),
	},
	{
		c("07f4c9774540f9f81fa29a73910899ad91d950e8f83a4f52d37ccc35a982f152"),
		c("02d8b931d897f634fd9cdae140a7b3f4d4bab1814e009fe84e754c4a23ae23cc"),
		c("2b9e86726e0cfec43981d9898da6ddb631ae469a473aa73e570274ecd2376899"),
	},
	{
		c("0c96c00773943b1de5a3dfb5959f30975f85adc57cc641bc2cea037837447191"),
		c("258a43226d21462808593a8701f2dce2aaa28668f8fe35647a706fa4a81d5d47"),
		c("26688ac841f42286102d1494db773e91760d8cad9cfb1a654284ed630a9bee42"),
	},
	{
		c("0b39f30858ad21e1805c8ced014837777cfdd776fc2d4c07a97b2351f21764b1"),
		c("0b114bc66867e038d6648a6ab3556243a5f78ea3db7aa997ba13961735792377"),
		c("0c08b1719426f8ff2dee487f9f41ac785ffdb8a7be5fc869754689cb02999e51"),
	},
}

func sbox(x fr.Element) fr.Element {
	var x2, x4, x5 fr.Element
	x2.Square(&x)
	x4.Square(&x2)
	x5.Mul(&x4, &x)
	return x5
}

// externalMatrix is the MDS mix used in full rounds: t = s0+s1+s2,
// output (s0+t, s1+t, s2+t).
func externalMatrix(s0, s1, s2 fr.Element) (fr.Element, fr.Element, fr.Element) {
	var sum fr.Element
	sum.Add(&s0, &s1)
	sum.Add(&sum, &s2)
	var o0, o1, o2 fr.Element
	o0.Add(&s0, &sum)
	o1.Add(&s1, &sum)
	o2.Add(&s2, &sum)
	return o0, o1, o2
}

// internalMatrix is the MDS mix used in partial rounds: t = s0+s1+s2,
// output (s0+t, s1+t, 2*s2+t).
func internalMatrix(s0, s1, s2 fr.Element) (fr.Element, fr.Element, fr.Element) {
	var sum fr.Element
	sum.Add(&s0, &s1)
	sum.Add(&sum, &s2)
	var o0, o1, o2, twoS2 fr.Element
	o0.Add(&s0, &sum)
	o1.Add(&s1, &sum)
	twoS2.Add(&s2, &s2)
	o2.Add(&twoS2, &sum)
	return o0, o1, o2
}

// permutation applies the full Perm3 permutation to a 3-element state.
func permutation(s0, s1, s2 fr.Element) (fr.Element, fr.Element, fr.Element) {
	s0, s1, s2 = externalMatrix(s0, s1, s2)

	for _, round := range fullRoundKeysStart {
		s0 = sbox(addE(s0, round[0]))
		s1 = sbox(addE(s1, round[1]))
		s2 = sbox(addE(s2, round[2]))
		s0, s1, s2 = externalMatrix(s0, s1, s2)
	}

	for _, rc := range partialRoundKeys {
		s0 = sbox(addE(s0, rc))
		s0, s1, s2 = internalMatrix(s0, s1, s2)
	}

	for _, round := range fullRoundKeysEnd {
		s0 = sbox(addE(s0, round[0]))
		s1 = sbox(addE(s1, round[1]))
		s2 = sbox(addE(s2, round[2]))
		s0, s1, s2 = externalMatrix(s0, s1, s2)
	}

	return s0, s1, s2
}

func addE(a, b fr.Element) fr.Element {
	var o fr.Element
	o.Add(&a, &b)
	return o
}

// HashDomain is the two-to-one hash with an explicit domain field element.
func HashDomain(a, b, domain fr.Element) fr.Element {
	s0, _, _ := permutation(a, b, domain)
	return s0
}

// Hash is HashDomain with the zero (None) domain.
func Hash(a, b fr.Element) fr.Element {
	return HashDomain(a, b, fr.FromUint64(0))
}

// HashWithDomain is the two-to-one hash with a named Domain.
func HashWithDomain(a, b fr.Element, domain Domain) fr.Element {
	return HashDomain(a, b, domain.Value())
}

// HashSequenceWithDomain folds a variable-length input sequence into one
// field element, optionally seeded, per spec §4.1:
//   - empty inputs, no seed: panics (caller error, never happens in this
//     codebase since every call site supplies at least one input or a seed)
//   - empty inputs, seed present: returns the seed
//   - single input, no seed: hash_domain(0, inputs[0], d)
//   - seed present: fold starting from hash_domain(seed, inputs[0], d)
//   - otherwise: fold starting from hash_domain(inputs[0], inputs[1], d)
func HashSequenceWithDomain(inputs []fr.Element, domain Domain, seed *fr.Element) fr.Element {
	d := domain.Value()

	if len(inputs) == 0 {
		if seed == nil {
			panic("poseidon2: HashSequenceWithDomain requires at least one input or a seed")
		}
		return *seed
	}

	if len(inputs) == 1 && seed == nil {
		return HashDomain(fr.FromUint64(0), inputs[0], d)
	}

	var acc fr.Element
	startIndex := 0
	if seed != nil {
		acc = HashDomain(*seed, inputs[0], d)
		startIndex = 1
	} else {
		acc = HashDomain(inputs[0], inputs[1], d)
		startIndex = 2
	}

	for _, in := range inputs[startIndex:] {
		acc = HashDomain(acc, in, d)
	}

	return acc
}
