/*
 * stitch.go, part of dielectric.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package dielectric

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// ZeroFieldReference returns the sample all the dipoles are referenced to:
// the last one of the zero-field run.
func ZeroFieldReference(zero Segment) (Sample, error) {
	s, ok := zero.Last()
	if !ok {
		return s, newError(EmptyInput, fmt.Sprintf("zero-field segment %q has no samples", zero.Source), "ZeroFieldReference")
	}
	return s, nil
}

// Stitch merges the relaxed-ion segments into one ordered slice of samples.
// If sortFiles is true, the segments are first ordered by Source.
//
// With dedup, samples are keyed by Step. When two samples share a step,
// the one processed later wins, which recovers restart overlaps, where
// a file repeats the last steps of the previous one. The result is ordered
// by step.
//
// Without dedup (sequential, or "extend" mode), segments are appended in order.
// The steps of each segment are shifted by the last step of everything
// appended before it, so they form one counter. Nothing is merged: samples
// that end up with the same shifted step are all kept. Each segment's own
// steps must be strictly increasing.
//
// The input segments are not modified.
func Stitch(relaxed []Segment, dedup, sortFiles bool) ([]Sample, error) {
	segs := relaxed
	if sortFiles {
		segs = make([]Segment, len(relaxed))
		copy(segs, relaxed)
		sort.SliceStable(segs, func(i, j int) bool { return segs[i].Source < segs[j].Source })
	}
	for _, v := range segs {
		if err := checkDurations(v.Source, v.Samples); err != nil {
			return nil, errDecorate(err, "Stitch")
		}
	}
	var ret []Sample
	var err error
	if dedup {
		ret, err = dedupMerge(segs)
	} else {
		ret, err = extend(segs)
	}
	if err != nil {
		return nil, errDecorate(err, "Stitch")
	}
	logrus.WithFields(logrus.Fields{
		"segments": len(segs),
		"samples":  len(ret),
		"dedup":    dedup,
	}).Debug("Stitched relaxed-ion segments")
	return ret, nil
}

func dedupMerge(segs []Segment) ([]Sample, error) {
	bystep := make(map[int]Sample)
	var overwritten int
	for _, seg := range segs {
		if seg.Len() == 0 {
			logrus.WithField("file", seg.Source).Warn("Segment has no samples")
			continue
		}
		for _, v := range seg.Samples {
			if _, ok := bystep[v.Step]; ok {
				overwritten++
			}
			bystep[v.Step] = v
		}
	}
	if len(bystep) == 0 {
		return nil, newError(EmptyInput, "no relaxed-ion samples to stitch", "dedupMerge")
	}
	if overwritten > 0 {
		logrus.WithField("steps", overwritten).Debug("Repeated steps replaced by their last occurrence")
	}
	steps := make([]int, 0, len(bystep))
	for k := range bystep {
		steps = append(steps, k)
	}
	sort.Ints(steps)
	ret := make([]Sample, len(steps))
	for i, v := range steps {
		ret[i] = bystep[v]
	}
	return ret, nil
}

func extend(segs []Segment) ([]Sample, error) {
	var n int
	for _, v := range segs {
		n += v.Len()
	}
	ret := make([]Sample, 0, n)
	for _, seg := range segs {
		if seg.Len() == 0 {
			logrus.WithField("file", seg.Source).Warn("Segment has no samples")
			continue
		}
		for i := 1; i < seg.Len(); i++ {
			if seg.Samples[i].Step <= seg.Samples[i-1].Step {
				msg := fmt.Sprintf("%q: step %d follows step %d", seg.Source, seg.Samples[i].Step, seg.Samples[i-1].Step)
				return nil, newError(InconsistentSegment, msg, "extend")
			}
		}
		var offset int
		if len(ret) > 0 {
			offset = ret[len(ret)-1].Step
		}
		for _, v := range seg.Samples {
			v.Step += offset
			ret = append(ret, v)
		}
	}
	if len(ret) == 0 {
		return nil, newError(EmptyInput, "no relaxed-ion samples to stitch", "extend")
	}
	return ret, nil
}

func checkDurations(source string, s []Sample) error {
	for _, v := range s {
		if !(v.Duration > 0) || math.IsInf(v.Duration, 0) {
			msg := fmt.Sprintf("%q: step %d has duration %g", source, v.Step, v.Duration)
			return newError(InconsistentSegment, msg, "checkDurations")
		}
	}
	return nil
}

// BuildSeries puts together the zero-field reference, the optional
// clamped-ion segment (nil if there is none) and the stitched relaxed-ion
// samples into one Series, referenced to zero.
//
// The time axis starts at 0, at the zero-field reference. Without a clamped
// segment it continues with the cumulative sum of the relaxed-ion durations.
// With one, the clamped segment gets its own cumulative axis, and the relaxed
// clock continues from the end of it, shifted by Step*Duration of the first
// relaxed sample, so segments split at an arbitrary restart point still line up.
//
// Each dipole component is the zero-field value followed by the clamped
// and relaxed values, minus the zero-field value, so all of them start at 0.
func BuildSeries(zero Sample, clamped *Segment, relaxed []Sample) (*Series, error) {
	if len(relaxed) == 0 {
		return nil, newError(EmptyInput, "no relaxed-ion samples", "BuildSeries")
	}
	var cs []Sample
	if clamped != nil {
		if clamped.Len() == 0 {
			return nil, newError(EmptyInput, fmt.Sprintf("clamped-ion segment %q has no samples", clamped.Source), "BuildSeries")
		}
		if err := checkDurations(clamped.Source, clamped.Samples); err != nil {
			return nil, errDecorate(err, "BuildSeries")
		}
		cs = clamped.Samples
	}
	if err := checkDurations("relaxed-ion", relaxed); err != nil {
		return nil, errDecorate(err, "BuildSeries")
	}
	n := 1 + len(cs) + len(relaxed)
	time := make([]float64, 1, n)
	if clamped != nil {
		tc := durations(cs)
		floats.CumSum(tc, tc)
		time = append(time, tc...)
	}
	tr := durations(relaxed)
	floats.CumSum(tr, tr)
	if clamped != nil {
		last := time[len(time)-1]
		floats.AddConst(float64(relaxed[0].Step)*relaxed[0].Duration+last, tr)
		if tr[0] < last {
			msg := fmt.Sprintf("relaxed-ion clock starts at %g, before the clamped-ion clock ends (%g)", tr[0], last)
			return nil, newError(InconsistentSegment, msg, "BuildSeries")
		}
	}
	time = append(time, tr...)

	S := &Series{
		Time:       time,
		Total:      component(zero, cs, relaxed, func(s Sample) float64 { return s.Total }),
		Electronic: component(zero, cs, relaxed, func(s Sample) float64 { return s.Electronic }),
		Ionic:      component(zero, cs, relaxed, func(s Sample) float64 { return s.Ionic }),
	}
	return S, nil
}

func durations(s []Sample) []float64 {
	ret := make([]float64, len(s))
	for i, v := range s {
		ret[i] = v.Duration
	}
	return ret
}

// component concatenates one dipole component of the zero-field, clamped and
// relaxed samples, and subtracts the zero-field value from all of them.
func component(zero Sample, clamped, relaxed []Sample, f func(Sample) float64) []float64 {
	ret := make([]float64, 0, 1+len(clamped)+len(relaxed))
	ref := f(zero)
	ret = append(ret, ref)
	for _, v := range clamped {
		ret = append(ret, f(v))
	}
	for _, v := range relaxed {
		ret = append(ret, f(v))
	}
	floats.AddConst(-ref, ret)
	return ret
}
